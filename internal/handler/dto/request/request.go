package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	ProductID        uuid.UUID  `json:"product_id" binding:"required"`
	Quantity         int        `json:"quantity" binding:"required,gt=0"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`
	DeliveryAddress  string     `json:"delivery_address" binding:"required"`
	Note             *string    `json:"note,omitempty"`
}

type ReviewRequest struct {
	Note *string `json:"note,omitempty"`
}

type QuoteRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
	Note  *string         `json:"note,omitempty"`
}

type RespondRequest struct {
	Response string  `json:"response" binding:"required,oneof=accepted declined revise"`
	Note     *string `json:"note,omitempty"`
}

type AssignTransporterRequest struct {
	TransporterID uuid.UUID `json:"transporter_id" binding:"required"`
	Note          *string   `json:"note,omitempty"`
}

func TrimmedNote(note *string) string {
	if note == nil {
		return ""
	}
	return strings.TrimSpace(*note)
}
