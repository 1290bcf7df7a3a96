package components

import (
	"rentworks/internal/handler"
	"rentworks/internal/handler/api"
	"rentworks/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRentalHandler,
		api.NewQuoteHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
