package repository

import (
	"context"

	"loanerdesk/internal/domain/reservation"
	"loanerdesk/internal/infra"
	"loanerdesk/internal/infra/db"
	"loanerdesk/internal/usecase/shared"
)

type EligibilityRepository struct {
	db db.DBTX
}

func NewEligibilityRepository(d db.DBTX) *EligibilityRepository {
	return &EligibilityRepository{db: d}
}

var _ shared.EligibilityRepository = (*EligibilityRepository)(nil)

func (r *EligibilityRepository) Create(
	ctx context.Context,
	reservationID string,
	checklist reservation.Eligibility,
	verifiedBy string,
) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO eligibility_verification (
			reservation_id, age_verified, license_verified,
			insurance_verified, waiver_signed, verified_by
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		reservationID, checklist.AgeVerified, checklist.LicenseVerified,
		checklist.InsuranceVerified, checklist.WaiverSigned, verifiedBy,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert eligibility verification", err)
	}
	return nil
}
