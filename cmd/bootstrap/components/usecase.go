package components

import (
	"loanerdesk/internal/pkg/clock"
	"loanerdesk/internal/usecase/commands"
	"loanerdesk/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewVehicleCommands,
		commands.NewCustomerCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewVehicleQueries,
		queries.NewCustomerQueries,
		queries.NewAdvisorQueries,
	),
)
