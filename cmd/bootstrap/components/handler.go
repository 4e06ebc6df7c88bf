package components

import (
	"coworking-reservations/internal/handler"
	"coworking-reservations/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewSpaceHandler,
		api.NewUserHandler,
		handler.NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)
