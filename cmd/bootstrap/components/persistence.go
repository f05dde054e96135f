package components

import (
	"loanerdesk/internal/infra/db"
	"loanerdesk/internal/infra/readstore"
	"loanerdesk/internal/infra/uow"
	"loanerdesk/internal/usecase/queries"
	"loanerdesk/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Pool-backed readstores for the query side
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(queries.VehicleViewRepo)),
		),
		fx.Annotate(
			readstore.NewCustomerReadStore,
			fx.As(new(queries.CustomerViewRepo)),
		),
		fx.Annotate(
			readstore.NewAdvisorReadStore,
			fx.As(new(queries.AdvisorViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
