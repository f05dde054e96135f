package queries

import (
	"context"
)

type AdvisorQueries interface {
	List(ctx context.Context) ([]*AdvisorView, error)
	GetByID(ctx context.Context, id string) (*AdvisorView, error)
}

type AdvisorViewRepo interface {
	FindByID(ctx context.Context, id string) (*AdvisorView, error)
	FindAll(ctx context.Context) ([]*AdvisorView, error)
}

type advisorQueriesImpl struct {
	repo AdvisorViewRepo
}

func NewAdvisorQueries(repo AdvisorViewRepo) AdvisorQueries {
	return &advisorQueriesImpl{repo: repo}
}

func (q *advisorQueriesImpl) List(ctx context.Context) ([]*AdvisorView, error) {
	return q.repo.FindAll(ctx)
}

func (q *advisorQueriesImpl) GetByID(ctx context.Context, id string) (*AdvisorView, error) {
	return q.repo.FindByID(ctx, id)
}
