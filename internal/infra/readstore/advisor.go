package readstore

import (
	"context"

	"loanerdesk/internal/infra"
	"loanerdesk/internal/infra/db"
	"loanerdesk/internal/pkg/pgconv"
	"loanerdesk/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type AdvisorReadStore struct {
	db db.DBTX
}

func NewAdvisorReadStore(d db.DBTX) *AdvisorReadStore {
	return &AdvisorReadStore{db: d}
}

var _ queries.AdvisorViewRepo = (*AdvisorReadStore)(nil)

const advisorViewColumns = `
	advisor_id, first_name, last_name, email, phone, created_at`

func (s *AdvisorReadStore) FindByID(ctx context.Context, id string) (*queries.AdvisorView, error) {
	row := s.db.QueryRow(ctx, `SELECT`+advisorViewColumns+` FROM service_advisors WHERE advisor_id = $1`, id)
	view, err := scanAdvisorView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service advisor not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service advisor", err)
	}
	return view, nil
}

func (s *AdvisorReadStore) FindAll(ctx context.Context) ([]*queries.AdvisorView, error) {
	rows, err := s.db.Query(ctx, `SELECT`+advisorViewColumns+`
		FROM service_advisors
		ORDER BY last_name ASC, first_name ASC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list service advisors", err)
	}
	defer rows.Close()

	views := make([]*queries.AdvisorView, 0)
	for rows.Next() {
		view, err := scanAdvisorView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan service advisor", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list service advisors", err)
	}
	return views, nil
}

func scanAdvisorView(row rowScanner) (*queries.AdvisorView, error) {
	var (
		view      queries.AdvisorView
		phone     pgtype.Text
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&view.AdvisorID, &view.FirstName, &view.LastName, &view.Email,
		&phone, &createdAt,
	); err != nil {
		return nil, err
	}
	view.Phone = pgconv.StringPtrFromPgtype(phone)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
