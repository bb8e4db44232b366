package api

import (
	"net/http"

	reqdto "quoteflow/internal/handler/dto/request"
	resdto "quoteflow/internal/handler/dto/response"
	"quoteflow/internal/handler/httperr"
	"quoteflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingQueries  queries.PricingQueries
	deliveryQueries queries.DeliveryQueries
}

func NewPricingHandler(pricingQueries queries.PricingQueries, deliveryQueries queries.DeliveryQueries) *PricingHandler {
	return &PricingHandler{
		pricingQueries:  pricingQueries,
		deliveryQueries: deliveryQueries,
	}
}

// @Summary Price breakdown
// @Description Itemized price for a product order; delivery fee included when an address is given
// @Tags pricing
// @Produce json
// @Security BearerAuth
// @Param product_id query string true "Product ID"
// @Param quantity query int true "Quantity"
// @Param include_installation query bool false "Include installation charge"
// @Param delivery_address query string false "Delivery address"
// @Success 200 {object} resdto.BreakdownResponse
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /pricing/breakdown [get]
func (h *PricingHandler) Breakdown(c *gin.Context) {
	var q reqdto.BreakdownQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid query parameters", nil)
		return
	}

	breakdown, err := h.pricingQueries.Breakdown(c.Request.Context(), queries.BreakdownParams{
		ProductID:           q.ProductID,
		Quantity:            q.Quantity,
		IncludeInstallation: q.IncludeInstallation,
		DeliveryAddress:     q.DeliveryAddress,
	})
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBreakdown(breakdown))
}

// @Summary Resolve delivery distance
// @Description Geocode an address and return distance from the warehouse plus the delivery fee
// @Tags delivery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DistanceRequest true "Address payload"
// @Success 200 {object} resdto.DistanceResponse
// @Failure 502 {object} httperr.Response
// @Router /delivery/distance [post]
func (h *PricingHandler) Distance(c *gin.Context) {
	var req reqdto.DistanceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	resolution, err := h.deliveryQueries.ResolveDistance(c.Request.Context(), req.Address)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResolution(resolution))
}
