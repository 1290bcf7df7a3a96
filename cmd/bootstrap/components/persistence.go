package components

import (
	"rentworks/internal/infra/db"
	"rentworks/internal/infra/readstore"
	"rentworks/internal/infra/repository"
	"rentworks/internal/infra/uow"
	"rentworks/internal/usecase/commands"
	"rentworks/internal/usecase/queries"
	"rentworks/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			repository.NewRentalRepository,
			fx.As(new(commands.RentalRepository)),
		),
		// Catalog reads are identical on both sides, so one repository
		// satisfies the command port and the query port.
		fx.Annotate(
			repository.NewCatalogRepository,
			fx.As(new(commands.CatalogRepository)),
			fx.As(new(queries.CatalogReadStore)),
		),
		fx.Annotate(
			readstore.NewRentalReadStore,
			fx.As(new(queries.RentalReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
