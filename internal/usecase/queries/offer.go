package queries

import (
	"context"
	"time"

	"quoteflow/internal/domain/actor"
	"quoteflow/internal/infra"
	"quoteflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferView struct {
	ID          uuid.UUID       `json:"id"`
	RequestID   uuid.UUID       `json:"request_id"`
	ActorID     uuid.UUID       `json:"actor_id"`
	OfferType   string          `json:"offer_type"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	Items       []OfferItemView `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

type OfferItemView struct {
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Specifications string          `json:"specifications,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

type OfferQueries interface {
	// History lists every negotiation round for a request, oldest first.
	History(ctx context.Context, a actor.Actor, requestID uuid.UUID) ([]*OfferView, error)
}

type OfferViewRepo interface {
	FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*OfferView, error)
}

type offerQueriesImpl struct {
	offers   OfferViewRepo
	requests RequestViewRepo
}

func NewOfferQueries(offers OfferViewRepo, requests RequestViewRepo) OfferQueries {
	return &offerQueriesImpl{offers: offers, requests: requests}
}

func (q *offerQueriesImpl) History(ctx context.Context, a actor.Actor, requestID uuid.UUID) ([]*OfferView, error) {
	view, err := q.requests.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, err
	}
	if err := authorizeView(a, view); err != nil {
		return nil, err
	}
	return q.offers.FindByRequestID(ctx, requestID)
}
