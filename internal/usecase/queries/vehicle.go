package queries

import (
	"context"
)

type VehicleQueries interface {
	List(ctx context.Context, status *string) ([]*VehicleView, error)
	GetByID(ctx context.Context, id string) (*VehicleView, error)
}

type VehicleViewRepo interface {
	FindByID(ctx context.Context, id string) (*VehicleView, error)
	FindAll(ctx context.Context, status *string) ([]*VehicleView, error)
}

type vehicleQueriesImpl struct {
	repo VehicleViewRepo
}

func NewVehicleQueries(repo VehicleViewRepo) VehicleQueries {
	return &vehicleQueriesImpl{repo: repo}
}

func (q *vehicleQueriesImpl) List(ctx context.Context, status *string) ([]*VehicleView, error) {
	return q.repo.FindAll(ctx, status)
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, id string) (*VehicleView, error) {
	return q.repo.FindByID(ctx, id)
}
