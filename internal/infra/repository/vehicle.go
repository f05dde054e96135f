package repository

import (
	"context"

	"loanerdesk/internal/domain/vehicle"
	"loanerdesk/internal/infra"
	"loanerdesk/internal/infra/db"
	"loanerdesk/internal/usecase/shared"
)

type VehicleRepository struct {
	db db.DBTX
}

func NewVehicleRepository(d db.DBTX) *VehicleRepository {
	return &VehicleRepository{db: d}
}

var _ shared.VehicleRepository = (*VehicleRepository)(nil)

func (r *VehicleRepository) Create(ctx context.Context, v shared.NewVehicle) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO vehicles (
			vehicle_id, make, model, year, license_plate,
			current_odometer, current_fuel_level, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.Make, v.Model, v.Year, v.LicensePlate,
		v.CurrentOdometer, v.CurrentFuelLevel.String(), v.Status.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert vehicle", err)
	}
	return nil
}

func (r *VehicleRepository) Update(ctx context.Context, id string, v shared.NewVehicle) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE vehicles
		SET make = $2,
		    model = $3,
		    year = $4,
		    license_plate = $5,
		    current_odometer = $6,
		    current_fuel_level = $7,
		    status = $8,
		    updated_at = NOW()
		WHERE vehicle_id = $1`,
		id, v.Make, v.Model, v.Year, v.LicensePlate,
		v.CurrentOdometer, v.CurrentFuelLevel.String(), v.Status.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update vehicle", err)
	}
	return requireRowAffected(tag.RowsAffected(), "vehicle not found")
}

// ApplyInspection overwrites status, odometer and fuel level from the
// readings taken at a checkout or check-in inspection.
func (r *VehicleRepository) ApplyInspection(
	ctx context.Context,
	id string,
	status vehicle.Status,
	odometer int32,
	fuel vehicle.FuelLevel,
) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE vehicles
		SET status = $2,
		    current_odometer = $3,
		    current_fuel_level = $4,
		    updated_at = NOW()
		WHERE vehicle_id = $1`,
		id, status.String(), odometer, fuel.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to apply inspection to vehicle", err)
	}
	return requireRowAffected(tag.RowsAffected(), "vehicle not found")
}
