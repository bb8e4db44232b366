package response

import (
	"time"

	"quoteflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RequestResponse struct {
	ID               uuid.UUID        `json:"id"`
	CustomerID       uuid.UUID        `json:"customerId"`
	ProductID        uuid.UUID        `json:"productId"`
	ProductName      string           `json:"productName"`
	Quantity         int              `json:"quantity"`
	Status           string           `json:"status"`
	QuotedPrice      *decimal.Decimal `json:"quotedPrice,omitempty"`
	ExpectedDelivery *time.Time       `json:"expectedDelivery,omitempty"`
	DeliveryAddress  string           `json:"deliveryAddress"`
	ManagerID        *uuid.UUID       `json:"managerId,omitempty"`
	TransporterID    *uuid.UUID       `json:"transporterId,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type RequestListResponse struct {
	ID          uuid.UUID        `json:"id"`
	CustomerID  uuid.UUID        `json:"customerId"`
	ProductName string           `json:"productName"`
	Quantity    int              `json:"quantity"`
	Status      string           `json:"status"`
	QuotedPrice *decimal.Decimal `json:"quotedPrice,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func FromRequestView(rm *queries.RequestView) *RequestResponse {
	return &RequestResponse{
		ID:               rm.ID,
		CustomerID:       rm.CustomerID,
		ProductID:        rm.ProductID,
		ProductName:      rm.ProductName,
		Quantity:         rm.Quantity,
		Status:           rm.Status,
		QuotedPrice:      rm.QuotedPrice,
		ExpectedDelivery: rm.ExpectedDelivery,
		DeliveryAddress:  rm.DeliveryAddress,
		ManagerID:        rm.ManagerID,
		TransporterID:    rm.TransporterID,
		Notes:            rm.Notes,
		CreatedAt:        rm.CreatedAt,
		UpdatedAt:        rm.UpdatedAt,
	}
}

func FromRequestListItem(rm *queries.RequestListItem) *RequestListResponse {
	return &RequestListResponse{
		ID:          rm.ID,
		CustomerID:  rm.CustomerID,
		ProductName: rm.ProductName,
		Quantity:    rm.Quantity,
		Status:      rm.Status,
		QuotedPrice: rm.QuotedPrice,
		CreatedAt:   rm.CreatedAt,
	}
}
