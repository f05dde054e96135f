package repository

import (
	"context"

	"loanerdesk/internal/infra"
	"loanerdesk/internal/infra/db"
	"loanerdesk/internal/pkg/pgconv"
	"loanerdesk/internal/usecase/shared"
)

type CustomerRepository struct {
	db db.DBTX
}

func NewCustomerRepository(d db.DBTX) *CustomerRepository {
	return &CustomerRepository{db: d}
}

var _ shared.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE customer_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check customer existence", err)
	}
	return exists, nil
}

func (r *CustomerRepository) Create(ctx context.Context, cust shared.NewCustomer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (
			customer_id, first_name, last_name, date_of_birth,
			drivers_license_number, insurance_provider, phone, email
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cust.ID, cust.FirstName, cust.LastName, pgconv.DateToPgtype(cust.DateOfBirth),
		cust.DriversLicenseNumber, cust.InsuranceProvider, cust.Phone, cust.Email,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert customer", err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, id string, cust shared.NewCustomer) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE customers
		SET first_name = $2,
		    last_name = $3,
		    date_of_birth = $4,
		    drivers_license_number = $5,
		    insurance_provider = $6,
		    phone = $7,
		    email = $8,
		    updated_at = NOW()
		WHERE customer_id = $1`,
		id, cust.FirstName, cust.LastName, pgconv.DateToPgtype(cust.DateOfBirth),
		cust.DriversLicenseNumber, cust.InsuranceProvider, cust.Phone, cust.Email,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update customer", err)
	}
	return requireRowAffected(tag.RowsAffected(), "customer not found")
}
