package readstore

import (
	"context"

	"loanerdesk/internal/infra"
	"loanerdesk/internal/infra/db"
	"loanerdesk/internal/pkg/pgconv"
	"loanerdesk/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(d db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: d}
}

var _ queries.VehicleViewRepo = (*VehicleReadStore)(nil)

const vehicleViewColumns = `
	vehicle_id, make, model, year, license_plate,
	current_odometer, current_fuel_level, status, created_at, updated_at`

func (s *VehicleReadStore) FindByID(ctx context.Context, id string) (*queries.VehicleView, error) {
	row := s.db.QueryRow(ctx, `SELECT`+vehicleViewColumns+` FROM vehicles WHERE vehicle_id = $1`, id)
	view, err := scanVehicleView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle", err)
	}
	return view, nil
}

func (s *VehicleReadStore) FindAll(ctx context.Context, status *string) ([]*queries.VehicleView, error) {
	rows, err := s.db.Query(ctx, `SELECT`+vehicleViewColumns+`
		FROM vehicles
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY make ASC, model ASC, vehicle_id ASC`, status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles", err)
	}
	defer rows.Close()

	views := make([]*queries.VehicleView, 0)
	for rows.Next() {
		view, err := scanVehicleView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles", err)
	}
	return views, nil
}

func scanVehicleView(row rowScanner) (*queries.VehicleView, error) {
	var (
		view      queries.VehicleView
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&view.VehicleID, &view.Make, &view.Model, &view.Year, &view.LicensePlate,
		&view.CurrentOdometer, &view.CurrentFuelLevel, &view.Status,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
