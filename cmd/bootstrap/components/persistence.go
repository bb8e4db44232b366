package components

import (
	"quoteflow/internal/infra/db"
	"quoteflow/internal/infra/readstore"
	"quoteflow/internal/infra/uow"
	"quoteflow/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// Read stores
		fx.Annotate(
			readstore.NewRequestReadStore,
			fx.As(new(queries.RequestViewRepo)),
		),
		fx.Annotate(
			readstore.NewOfferReadStore,
			fx.As(new(queries.OfferViewRepo)),
		),
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.ProductViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
