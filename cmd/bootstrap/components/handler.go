package components

import (
	"quoteflow/internal/handler"
	"quoteflow/internal/handler/api"
	"quoteflow/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRequestHandler,
		api.NewNegotiationHandler,
		api.NewPricingHandler,
		api.NewProductHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
