package components

import (
	"loanerdesk/internal/handler"
	"loanerdesk/internal/handler/api"
	"loanerdesk/internal/notifier"
	"loanerdesk/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewVehicleHandler,
		api.NewCustomerHandler,
		api.NewAdvisorHandler,
		NewStreamHandler,
	),
	fx.Invoke(handler.NewRouter),
)

func NewStreamHandler(hub *notifier.Hub, cfg config.Config) *api.StreamHandler {
	return api.NewStreamHandler(hub, cfg.Stream)
}
