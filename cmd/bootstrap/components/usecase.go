package components

import (
	"quoteflow/internal/pkg/clock"
	"quoteflow/internal/usecase/commands"
	"quoteflow/internal/usecase/queries"

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

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRequestQueries,
		queries.NewOfferQueries,
		queries.NewProductQueries,
		queries.NewPricingQueries,
		queries.NewDeliveryQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRequestCommands,
		commands.NewNegotiationCommands,
	),
)
