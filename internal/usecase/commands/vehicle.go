package commands

import (
	"context"

	"loanerdesk/internal/domain/vehicle"
	"loanerdesk/internal/infra"
	"loanerdesk/internal/pkg/errs"
	"loanerdesk/internal/usecase/queries"
	"loanerdesk/internal/usecase/shared"
)

type VehicleInput struct {
	VehicleID        string
	Make             string
	Model            string
	Year             int32
	LicensePlate     string
	CurrentOdometer  int32
	CurrentFuelLevel string
	Status           string
}

type VehicleCommands interface {
	Create(ctx context.Context, in VehicleInput) (*queries.VehicleView, error)
	Update(ctx context.Context, id string, in VehicleInput) (*queries.VehicleView, error)
}

type vehicleCommandsImpl struct {
	uow  shared.UnitOfWork
	repo queries.VehicleViewRepo
}

func NewVehicleCommands(uow shared.UnitOfWork, repo queries.VehicleViewRepo) VehicleCommands {
	return &vehicleCommandsImpl{uow: uow, repo: repo}
}

var (
	ErrVehicleAlreadyExists = errs.New("vehicle already exists")
)

func toNewVehicle(in VehicleInput) (shared.NewVehicle, error) {
	if in.VehicleID == "" || in.Make == "" || in.Model == "" {
		return shared.NewVehicle{}, ErrMissingRequiredFields
	}
	if in.CurrentOdometer < 0 {
		return shared.NewVehicle{}, ErrInvalidInput
	}

	fuel := vehicle.FuelFull
	if in.CurrentFuelLevel != "" {
		parsed, err := vehicle.ParseFuelLevel(in.CurrentFuelLevel)
		if err != nil {
			return shared.NewVehicle{}, errs.Mark(err, ErrInvalidInput)
		}
		fuel = parsed
	}

	status := vehicle.StatusAvailable
	if in.Status != "" {
		parsed, err := vehicle.ParseStatus(in.Status)
		if err != nil {
			return shared.NewVehicle{}, errs.Mark(err, ErrInvalidInput)
		}
		status = parsed
	}

	return shared.NewVehicle{
		ID:               in.VehicleID,
		Make:             in.Make,
		Model:            in.Model,
		Year:             in.Year,
		LicensePlate:     in.LicensePlate,
		CurrentOdometer:  in.CurrentOdometer,
		CurrentFuelLevel: fuel,
		Status:           status,
	}, nil
}

func (c *vehicleCommandsImpl) Create(ctx context.Context, in VehicleInput) (*queries.VehicleView, error) {
	nv, err := toNewVehicle(in)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Vehicles().Create(ctx, nv); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrVehicleAlreadyExists
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.fetch(ctx, nv.ID)
}

func (c *vehicleCommandsImpl) Update(ctx context.Context, id string, in VehicleInput) (*queries.VehicleView, error) {
	in.VehicleID = id
	nv, err := toNewVehicle(in)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Vehicles().Update(ctx, id, nv); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrVehicleNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.fetch(ctx, id)
}

func (c *vehicleCommandsImpl) fetch(ctx context.Context, id string) (*queries.VehicleView, error) {
	view, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
