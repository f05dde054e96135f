package queries

import (
	"context"
)

type CustomerQueries interface {
	List(ctx context.Context) ([]*CustomerView, error)
	GetByID(ctx context.Context, id string) (*CustomerView, error)
	Search(ctx context.Context, query string) ([]*CustomerView, error)
}

type CustomerViewRepo interface {
	FindByID(ctx context.Context, id string) (*CustomerView, error)
	FindAll(ctx context.Context) ([]*CustomerView, error)
	Search(ctx context.Context, query string) ([]*CustomerView, error)
}

type customerQueriesImpl struct {
	repo CustomerViewRepo
}

func NewCustomerQueries(repo CustomerViewRepo) CustomerQueries {
	return &customerQueriesImpl{repo: repo}
}

func (q *customerQueriesImpl) List(ctx context.Context) ([]*CustomerView, error) {
	return q.repo.FindAll(ctx)
}

func (q *customerQueriesImpl) GetByID(ctx context.Context, id string) (*CustomerView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *customerQueriesImpl) Search(ctx context.Context, query string) ([]*CustomerView, error) {
	return q.repo.Search(ctx, query)
}
