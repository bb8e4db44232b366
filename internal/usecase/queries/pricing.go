package queries

import (
	"context"

	"quoteflow/internal/domain/pricing"
	"quoteflow/internal/infra"
	"quoteflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BreakdownParams struct {
	ProductID           uuid.UUID
	Quantity            int
	IncludeInstallation bool
	// DeliveryAddress is optional; when empty the breakdown carries no
	// delivery fee.
	DeliveryAddress string
}

type PricingQueries interface {
	Breakdown(ctx context.Context, params BreakdownParams) (*pricing.Breakdown, error)
}

type pricingQueriesImpl struct {
	products ProductViewRepo
	resolver AddressResolver
}

func NewPricingQueries(products ProductViewRepo, resolver AddressResolver) PricingQueries {
	return &pricingQueriesImpl{products: products, resolver: resolver}
}

func (q *pricingQueriesImpl) Breakdown(ctx context.Context, params BreakdownParams) (*pricing.Breakdown, error) {
	product, err := q.products.FindByID(ctx, params.ProductID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrProductNotFound
		}
		return nil, err
	}

	deliveryFee := decimal.Zero
	if params.DeliveryAddress != "" {
		resolution, err := q.resolver.Resolve(ctx, params.DeliveryAddress)
		if err != nil {
			return nil, err
		}
		deliveryFee = resolution.Fee
	}

	includeInstallation := params.IncludeInstallation && product.InstallationAvailable

	breakdown, err := pricing.ComputeBreakdown(pricing.Input{
		BasePrice:           product.BasePrice,
		Quantity:            params.Quantity,
		CustomizationFee:    product.CustomizationFee,
		IncludeInstallation: includeInstallation,
		DeliveryFee:         deliveryFee,
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}
	return &breakdown, nil
}
