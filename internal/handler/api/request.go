package api

import (
	"errors"
	"net/http"

	"quoteflow/internal/domain/actor"
	reqdto "quoteflow/internal/handler/dto/request"
	resdto "quoteflow/internal/handler/dto/response"
	"quoteflow/internal/handler/httperr"
	"quoteflow/internal/handler/middleware"
	"quoteflow/internal/pkg/errs"
	"quoteflow/internal/usecase/commands"
	"quoteflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	requestCommands commands.RequestCommands
	requestQueries  queries.RequestQueries
}

func NewRequestHandler(requestCommands commands.RequestCommands, requestQueries queries.RequestQueries) *RequestHandler {
	return &RequestHandler{
		requestCommands: requestCommands,
		requestQueries:  requestQueries,
	}
}

// @Summary Create request
// @Description Submit a new product request with an idempotency key
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateRequest true "Request payload"
// @Success 201 {object} resdto.RequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	a, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing actor in context"), "Internal server error", nil)
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}

	var req reqdto.CreateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	params := commands.CreateRequestParams{
		ProductID:        req.ProductID,
		Quantity:         req.Quantity,
		ExpectedDelivery: req.ExpectedDelivery,
		DeliveryAddress:  req.DeliveryAddress,
		Note:             reqdto.TrimmedNote(req.Note),
	}

	result, err := h.requestCommands.Create(c.Request.Context(), a, params, idempotencyKey)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromRequestView(result.Request))
}

// @Summary List requests
// @Description List requests visible to the caller, optionally filtered by status or customer
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param customer_id query string false "Filter by customer (managers only; others are scoped to themselves)"
// @Success 200 {array} resdto.RequestListResponse
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	a, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing actor in context"), "Internal server error", nil)
		return
	}

	var filter queries.RequestFilter
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ID format", nil)
			return
		}
		filter.CustomerID = &id
	}

	items, err := h.requestQueries.List(c.Request.Context(), a, filter)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}

	response := make([]*resdto.RequestListResponse, len(items))
	for i, rm := range items {
		response[i] = resdto.FromRequestListItem(rm)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get request
// @Description Get one request by ID
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 404 {object} httperr.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	a, requestID, ok := actorAndID(c)
	if !ok {
		return
	}

	view, err := h.requestQueries.GetByID(c.Request.Context(), a, requestID)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary Begin review
// @Description Move a submitted request into manager review
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.ReviewRequest false "Optional note"
// @Success 200 {object} resdto.RequestResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/review [post]
func (h *RequestHandler) BeginReview(c *gin.Context) {
	a, requestID, ok := actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.ReviewRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
			return
		}
	}

	view, err := h.requestCommands.BeginReview(c.Request.Context(), a, requestID, reqdto.TrimmedNote(req.Note))
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary Quote request
// @Description Set the quoted price on a request under review
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.QuoteRequest true "Quote payload"
// @Success 200 {object} resdto.RequestResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/quote [post]
func (h *RequestHandler) Quote(c *gin.Context) {
	a, requestID, ok := actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.QuoteRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.requestCommands.Quote(c.Request.Context(), a, requestID, req.Price, reqdto.TrimmedNote(req.Note))
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary Respond to quote
// @Description Customer accepts, declines or asks to revise a quote
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.RespondRequest true "Response payload"
// @Success 200 {object} resdto.RequestResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/response [post]
func (h *RequestHandler) Respond(c *gin.Context) {
	a, requestID, ok := actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.RespondRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.requestCommands.Respond(c.Request.Context(), a, requestID, req.Response, reqdto.TrimmedNote(req.Note))
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary Assign transporter
// @Description Assign a transporter to an accepted request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.AssignTransporterRequest true "Assignment payload"
// @Success 200 {object} resdto.RequestResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/transporter [post]
func (h *RequestHandler) AssignTransporter(c *gin.Context) {
	a, requestID, ok := actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.AssignTransporterRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.requestCommands.AssignTransporter(c.Request.Context(), a, requestID, req.TransporterID, reqdto.TrimmedNote(req.Note))
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary Complete delivery
// @Description Assigned transporter marks the delivery as completed
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/complete [post]
func (h *RequestHandler) Complete(c *gin.Context) {
	a, requestID, ok := actorAndID(c)
	if !ok {
		return
	}

	view, err := h.requestCommands.MarkCompleted(c.Request.Context(), a, requestID)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

func actorAndID(c *gin.Context) (actor.Actor, uuid.UUID, bool) {
	a, okActor := middleware.GetActor(c)
	if !okActor {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing actor in context"), "Internal server error", nil)
		return a, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ID format", nil)
		return a, uuid.Nil, false
	}
	return a, id, true
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.Join(errs.ErrInvalidInput, err)
	}
	return key, nil
}
