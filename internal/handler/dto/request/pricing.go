package request

import (
	"github.com/google/uuid"
)

// BreakdownQuery is bound from query parameters.
type BreakdownQuery struct {
	ProductID           uuid.UUID `form:"product_id" binding:"required"`
	Quantity            int       `form:"quantity" binding:"required,gt=0"`
	IncludeInstallation bool      `form:"include_installation"`
	DeliveryAddress     string    `form:"delivery_address"`
}

type DistanceRequest struct {
	Address string `json:"address" binding:"required"`
}
