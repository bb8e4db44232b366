package queries

import (
	"context"
	"time"

	"quoteflow/internal/infra"
	"quoteflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductView struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	BasePrice             decimal.Decimal `json:"base_price"`
	CustomizationFee      decimal.Decimal `json:"customization_fee"`
	InstallationAvailable bool            `json:"installation_available"`
	CreatedAt             time.Time       `json:"created_at"`
}

type ProductQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context) ([]*ProductView, error)
}

type ProductViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	FindAll(ctx context.Context) ([]*ProductView, error)
}

type productQueriesImpl struct {
	repo ProductViewRepo
}

func NewProductQueries(repo ProductViewRepo) ProductQueries {
	return &productQueriesImpl{repo: repo}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrProductNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *productQueriesImpl) List(ctx context.Context) ([]*ProductView, error) {
	return q.repo.FindAll(ctx)
}
