package response

import (
	"quoteflow/internal/domain/delivery"
	"quoteflow/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

type BreakdownResponse struct {
	BasePrice          decimal.Decimal `json:"basePrice"`
	CustomizationFee   decimal.Decimal `json:"customizationFee"`
	InstallationCharge decimal.Decimal `json:"installationCharge"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
	DeliveryFee        decimal.Decimal `json:"deliveryFee"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	Note               string          `json:"note,omitempty"`
}

func FromBreakdown(b *pricing.Breakdown) *BreakdownResponse {
	return &BreakdownResponse{
		BasePrice:          b.BasePrice,
		CustomizationFee:   b.CustomizationFee,
		InstallationCharge: b.InstallationCharge,
		TaxAmount:          b.TaxAmount,
		DeliveryFee:        b.DeliveryFee,
		TotalPrice:         b.TotalPrice,
		Note:               b.Note,
	}
}

type DistanceResponse struct {
	Address     string          `json:"geocodedAddress"`
	Lat         float64         `json:"lat"`
	Lng         float64         `json:"lng"`
	DistanceKm  float64         `json:"distanceKm"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
}

func FromResolution(r *delivery.Resolution) *DistanceResponse {
	return &DistanceResponse{
		Address:     r.Address,
		Lat:         r.Coordinates.Lat,
		Lng:         r.Coordinates.Lng,
		DistanceKm:  r.DistanceKm,
		DeliveryFee: r.Fee,
	}
}
