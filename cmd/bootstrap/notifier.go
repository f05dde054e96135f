package bootstrap

import (
	"context"

	"loanerdesk/internal/notifier"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		notifier.NewHub,
		fx.Annotate(
			func(h *notifier.Hub) *notifier.Hub { return h },
			fx.As(new(notifier.Publisher)),
		),
	),
	fx.Invoke(runHub),
)

// runHub ties the broadcast loop to the application lifecycle.
func runHub(lc fx.Lifecycle, hub *notifier.Hub) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
