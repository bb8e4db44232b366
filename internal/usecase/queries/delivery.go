package queries

import (
	"context"

	"quoteflow/internal/domain/delivery"
)

// AddressResolver turns a free-text address into coordinates, distance from
// the warehouse and a delivery fee. Implementations may cache.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (*delivery.Resolution, error)
}

type DeliveryQueries interface {
	ResolveDistance(ctx context.Context, address string) (*delivery.Resolution, error)
}

type deliveryQueriesImpl struct {
	resolver AddressResolver
}

func NewDeliveryQueries(resolver AddressResolver) DeliveryQueries {
	return &deliveryQueriesImpl{resolver: resolver}
}

func (q *deliveryQueriesImpl) ResolveDistance(ctx context.Context, address string) (*delivery.Resolution, error) {
	return q.resolver.Resolve(ctx, address)
}
