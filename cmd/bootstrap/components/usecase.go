package components

import (
	"rentworks/internal/domain/rental"
	"rentworks/internal/pkg/clock"
	"rentworks/internal/usecase/commands"
	"rentworks/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		rental.NewStandardCalculator,
		fx.As(new(rental.Calculator)),
	),
	func(clk clock.Clock, calc rental.Calculator) *rental.Factory {
		return rental.NewFactory(clk, calc)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRentalCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRentalQueries,
	),
)
