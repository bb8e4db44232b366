package api

import (
	"net/http"

	reqdto "quoteflow/internal/handler/dto/request"
	resdto "quoteflow/internal/handler/dto/response"
	"quoteflow/internal/handler/httperr"
	"quoteflow/internal/usecase/commands"
	"quoteflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type NegotiationHandler struct {
	negotiationCommands commands.NegotiationCommands
	offerQueries        queries.OfferQueries
}

func NewNegotiationHandler(negotiationCommands commands.NegotiationCommands, offerQueries queries.OfferQueries) *NegotiationHandler {
	return &NegotiationHandler{
		negotiationCommands: negotiationCommands,
		offerQueries:        offerQueries,
	}
}

// @Summary Submit offer
// @Description Append a negotiation round; replaces any offer still pending
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param id path string true "Request ID"
// @Param request body reqdto.SubmitOfferRequest true "Offer payload"
// @Success 201 {object} resdto.OfferResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/offers [post]
func (h *NegotiationHandler) SubmitOffer(c *gin.Context) {
	a, requestID, ok := actorAndID(c)
	if !ok {
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}

	var req reqdto.SubmitOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	items := make([]commands.OfferItemParams, len(req.Items))
	for i, it := range req.Items {
		items[i] = commands.OfferItemParams{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			TotalPrice:     it.TotalPrice,
			Specifications: reqdto.TrimmedNote(it.Specifications),
			Notes:          reqdto.TrimmedNote(it.Notes),
		}
	}
	params := commands.SubmitOfferParams{
		OfferType:   req.OfferType,
		TotalAmount: req.TotalAmount,
		Items:       items,
		Notes:       reqdto.TrimmedNote(req.Notes),
	}

	result, err := h.negotiationCommands.SubmitOffer(c.Request.Context(), a, requestID, params, idempotencyKey)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromOfferView(result.Offer))
}

// @Summary Offer history
// @Description List every negotiation round for a request, oldest first
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {array} resdto.OfferResponse
// @Failure 404 {object} httperr.Response
// @Router /requests/{id}/offers [get]
func (h *NegotiationHandler) History(c *gin.Context) {
	a, requestID, ok := actorAndID(c)
	if !ok {
		return
	}

	views, err := h.offerQueries.History(c.Request.Context(), a, requestID)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}

	response := make([]*resdto.OfferResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromOfferView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Resolve offer
// @Description Manager accepts or rejects a pending offer
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param request body reqdto.ResolveOfferRequest true "Resolution payload"
// @Success 200 {object} resdto.RequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /offers/{id}/resolve [post]
func (h *NegotiationHandler) ResolveOffer(c *gin.Context) {
	a, offerID, ok := actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.ResolveOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.negotiationCommands.ResolveOffer(c.Request.Context(), a, offerID, req.Outcome)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}
