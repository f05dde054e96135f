package queries

import (
	"context"
)

type ReservationQueries interface {
	List(ctx context.Context, status *string) ([]*ReservationView, error)
	GetByID(ctx context.Context, id string) (*ReservationView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id string) (*ReservationView, error)
	FindAll(ctx context.Context, status *string) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) List(ctx context.Context, status *string) ([]*ReservationView, error) {
	return q.repo.FindAll(ctx, status)
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id string) (*ReservationView, error) {
	return q.repo.FindByID(ctx, id)
}
