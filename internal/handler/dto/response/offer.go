package response

import (
	"time"

	"quoteflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferItemResponse struct {
	ProductID      uuid.UUID       `json:"productId"`
	ProductName    string          `json:"productName"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Specifications string          `json:"specifications,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

type OfferResponse struct {
	ID          uuid.UUID           `json:"id"`
	RequestID   uuid.UUID           `json:"requestId"`
	ActorID     uuid.UUID           `json:"actorId"`
	OfferType   string              `json:"offerType"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Status      string              `json:"status"`
	Notes       string              `json:"notes,omitempty"`
	Items       []OfferItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"createdAt"`
}

func FromOfferView(rm *queries.OfferView) *OfferResponse {
	items := make([]OfferItemResponse, len(rm.Items))
	for i, it := range rm.Items {
		items[i] = OfferItemResponse{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			TotalPrice:     it.TotalPrice,
			Specifications: it.Specifications,
			Notes:          it.Notes,
		}
	}
	return &OfferResponse{
		ID:          rm.ID,
		RequestID:   rm.RequestID,
		ActorID:     rm.ActorID,
		OfferType:   rm.OfferType,
		TotalAmount: rm.TotalAmount,
		Status:      rm.Status,
		Notes:       rm.Notes,
		Items:       items,
		CreatedAt:   rm.CreatedAt,
	}
}
