package readstore

import (
	"context"

	"loanerdesk/internal/infra"
	"loanerdesk/internal/infra/db"
	"loanerdesk/internal/pkg/pgconv"
	"loanerdesk/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type CustomerReadStore struct {
	db db.DBTX
}

func NewCustomerReadStore(d db.DBTX) *CustomerReadStore {
	return &CustomerReadStore{db: d}
}

var _ queries.CustomerViewRepo = (*CustomerReadStore)(nil)

const customerViewColumns = `
	customer_id, first_name, last_name, date_of_birth,
	drivers_license_number, insurance_provider, phone, email,
	created_at, updated_at`

func (s *CustomerReadStore) FindByID(ctx context.Context, id string) (*queries.CustomerView, error) {
	row := s.db.QueryRow(ctx, `SELECT`+customerViewColumns+` FROM customers WHERE customer_id = $1`, id)
	view, err := scanCustomerView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer", err)
	}
	return view, nil
}

func (s *CustomerReadStore) FindAll(ctx context.Context) ([]*queries.CustomerView, error) {
	rows, err := s.db.Query(ctx, `SELECT`+customerViewColumns+`
		FROM customers
		ORDER BY last_name ASC, first_name ASC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list customers", err)
	}
	defer rows.Close()
	return collectCustomerViews(rows)
}

// Search matches the query case-insensitively against name, email, phone and
// driver's license number.
func (s *CustomerReadStore) Search(ctx context.Context, query string) ([]*queries.CustomerView, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.Query(ctx, `SELECT`+customerViewColumns+`
		FROM customers
		WHERE first_name ILIKE $1
		   OR last_name ILIKE $1
		   OR email ILIKE $1
		   OR phone ILIKE $1
		   OR drivers_license_number ILIKE $1
		ORDER BY last_name ASC, first_name ASC`, pattern)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search customers", err)
	}
	defer rows.Close()
	return collectCustomerViews(rows)
}

func collectCustomerViews(rows interface {
	rowScanner
	Next() bool
	Err() error
}) ([]*queries.CustomerView, error) {
	views := make([]*queries.CustomerView, 0)
	for rows.Next() {
		view, err := scanCustomerView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan customer", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list customers", err)
	}
	return views, nil
}

func scanCustomerView(row rowScanner) (*queries.CustomerView, error) {
	var (
		view      queries.CustomerView
		dob       pgtype.Date
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&view.CustomerID, &view.FirstName, &view.LastName, &dob,
		&view.DriversLicenseNumber, &view.InsuranceProvider, &view.Phone, &view.Email,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	view.DateOfBirth = pgconv.DateFromPgtype(dob)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
