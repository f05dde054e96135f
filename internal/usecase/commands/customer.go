package commands

import (
	"context"
	"time"

	"loanerdesk/internal/domain/reservation"
	"loanerdesk/internal/infra"
	"loanerdesk/internal/pkg/errs"
	"loanerdesk/internal/usecase/queries"
	"loanerdesk/internal/usecase/shared"
)

type CustomerInput struct {
	CustomerID           *string
	FirstName            string
	LastName             string
	DateOfBirth          time.Time
	DriversLicenseNumber string
	InsuranceProvider    string
	Phone                string
	Email                string
}

type CustomerCommands interface {
	Create(ctx context.Context, in CustomerInput) (*queries.CustomerView, error)
	Update(ctx context.Context, id string, in CustomerInput) (*queries.CustomerView, error)
}

type customerCommandsImpl struct {
	uow  shared.UnitOfWork
	repo queries.CustomerViewRepo
}

func NewCustomerCommands(uow shared.UnitOfWork, repo queries.CustomerViewRepo) CustomerCommands {
	return &customerCommandsImpl{uow: uow, repo: repo}
}

var ErrCustomerAlreadyExists = errs.New("customer already exists")

func toNewCustomer(id string, in CustomerInput) (shared.NewCustomer, error) {
	if in.FirstName == "" || in.LastName == "" {
		return shared.NewCustomer{}, ErrMissingRequiredFields
	}
	return shared.NewCustomer{
		ID:                   id,
		FirstName:            in.FirstName,
		LastName:             in.LastName,
		DateOfBirth:          in.DateOfBirth,
		DriversLicenseNumber: in.DriversLicenseNumber,
		InsuranceProvider:    in.InsuranceProvider,
		Phone:                in.Phone,
		Email:                in.Email,
	}, nil
}

func (c *customerCommandsImpl) Create(ctx context.Context, in CustomerInput) (*queries.CustomerView, error) {
	id := reservation.NewCustomerID()
	if in.CustomerID != nil && *in.CustomerID != "" {
		id = *in.CustomerID
	}

	nc, err := toNewCustomer(id, in)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Customers().Create(ctx, nc); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrCustomerAlreadyExists
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

func (c *customerCommandsImpl) Update(ctx context.Context, id string, in CustomerInput) (*queries.CustomerView, error) {
	nc, err := toNewCustomer(id, in)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Customers().Update(ctx, id, nc); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCustomerNotFound
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

func (c *customerCommandsImpl) fetch(ctx context.Context, id string) (*queries.CustomerView, error) {
	view, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
