package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferItemRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	Quantity       int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice      decimal.Decimal `json:"unit_price" binding:"required"`
	TotalPrice     decimal.Decimal `json:"total_price" binding:"required"`
	Specifications *string         `json:"specifications,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
}

type SubmitOfferRequest struct {
	OfferType   string             `json:"offer_type" binding:"required,oneof=customer_offer admin_counter"`
	TotalAmount decimal.Decimal    `json:"total_amount" binding:"required"`
	Items       []OfferItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes       *string            `json:"notes,omitempty"`
}

type ResolveOfferRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=accepted rejected"`
}
