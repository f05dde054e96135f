package repository

import (
	"context"

	"loanerdesk/internal/domain/inspection"
	"loanerdesk/internal/infra"
	"loanerdesk/internal/infra/db"
	"loanerdesk/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type InspectionRepository struct {
	db db.DBTX
}

func NewInspectionRepository(d db.DBTX) *InspectionRepository {
	return &InspectionRepository{db: d}
}

var _ shared.InspectionRepository = (*InspectionRepository)(nil)

func (r *InspectionRepository) Create(ctx context.Context, reservationID string, rec inspection.Record) error {
	notes := pgtype.Text{String: rec.Notes, Valid: rec.Notes != ""}
	inspectedBy := pgtype.Text{String: rec.InspectedBy, Valid: rec.InspectedBy != ""}

	_, err := r.db.Exec(ctx, `
		INSERT INTO inspections (
			reservation_id, inspection_type, odometer, fuel_level, notes, inspected_by
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		reservationID, rec.Type.String(), rec.Odometer, rec.FuelLevel.String(),
		notes, inspectedBy,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert inspection", err)
	}
	return nil
}
