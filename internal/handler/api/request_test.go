//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"quoteflow/internal/domain/actor"
	"quoteflow/internal/handler/api"
	resdto "quoteflow/internal/handler/dto/response"
	"quoteflow/internal/pkg/errs"
	"quoteflow/internal/usecase/commands"
	"quoteflow/internal/usecase/queries"
	"quoteflow/tests/common/httptest"
	"quoteflow/tests/common/testutil"
	commandsmock "quoteflow/tests/mock/commands"
	queriesmock "quoteflow/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var testCustomerID = uuid.New()

type RequestHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRequestCommands
	mockQueries  *queriesmock.MockRequestQueries
	handler      *api.RequestHandler
}

func (s *RequestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRequestCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRequestQueries(s.mockCtrl)
	s.handler = api.NewRequestHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := authAs(actor.New(testCustomerID, actor.RoleCustomer))

	s.router.POST("/requests", authMiddleware, s.handler.Create)
	s.router.GET("/requests", authMiddleware, s.handler.List)
	s.router.GET("/requests/:id", authMiddleware, s.handler.Get)
	s.router.POST("/requests/:id/quote", authMiddleware, s.handler.Quote)
	s.router.POST("/requests/:id/response", authMiddleware, s.handler.Respond)
	s.router.POST("/requests/:id/complete", authMiddleware, s.handler.Complete)
}

func (s *RequestHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRequestHandlerSuite(t *testing.T) {
	suite.Run(t, new(RequestHandlerTestSuite))
}

// authAs sets the acting identity the way the real auth middleware would.
func authAs(a actor.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("actor", a)
		c.Next()
	}
}

func sampleView(id uuid.UUID, status string) *queries.RequestView {
	price := decimal.NewFromInt(110000)
	return &queries.RequestView{
		ID:              id,
		CustomerID:      testCustomerID,
		ProductID:       uuid.New(),
		ProductName:     "Teak Dining Table",
		Quantity:        4,
		Status:          status,
		QuotedPrice:     &price,
		DeliveryAddress: "MG Road, Pune",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *RequestHandlerTestSuite) TestCreate() {
	url := "/requests"
	idempotencyKey := uuid.New()
	headers := map[string]string{"Idempotency-Key": idempotencyKey.String()}

	reqBody := map[string]any{
		"product_id":       uuid.New().String(),
		"quantity":         4,
		"delivery_address": "MG Road, Pune",
		"note":             "urgent",
	}

	s.Run("success: returns 201 Created for a new request", func() {
		view := sampleView(uuid.New(), "submitted")
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), idempotencyKey).
			Return(&commands.CreateRequestResult{Request: view}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", headers)

		var response resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("submitted", response.Status)
	})

	s.Run("success: replayed request returns 200 OK", func() {
		view := sampleView(uuid.New(), "submitted")
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), idempotencyKey).
			Return(&commands.CreateRequestResult{Request: view, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", headers)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request without an idempotency key", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: product_id", mutate: testutil.Field("product_id", nil)},
			{name: "missing field: quantity", mutate: testutil.Field("quantity", nil)},
			{name: "missing field: delivery_address", mutate: testutil.Field("delivery_address", nil)},
			{name: "quantity must be positive", mutate: testutil.Field("quantity", 0)},
			{name: "malformed product id", mutate: testutil.Field("product_id", "not-a-uuid")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token", headers)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown product",
				commandsError:  errs.ErrProductNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Product not found",
			},
			{
				name:           "idempotency key reused with a different payload",
				commandsError:  errs.ErrIdempotencyMismatch,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Request conflicts with concurrent state",
			},
			{
				name:           "original call still in flight",
				commandsError:  errs.ErrIdempotencyInProgress,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Request conflicts with concurrent state",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), idempotencyKey).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", headers)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *RequestHandlerTestSuite) TestGet() {
	requestID := uuid.New()
	url := "/requests/" + requestID.String()

	s.Run("success: returns 200 OK with RequestResponse", func() {
		view := sampleView(requestID, "quoted")
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), requestID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(requestID, response.ID)
		s.Equal("quoted", response.Status)
		s.Equal("Teak Dining Table", response.ProductName)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})

	s.Run("error: 404 Not Found for missing request", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), requestID).
			Return(nil, errs.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Request not found")
	})

	s.Run("error: 403 Forbidden for another customer's request", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), requestID).
			Return(nil, errs.ErrUnauthorized).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Not permitted")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *RequestHandlerTestSuite) TestList() {
	items := []*queries.RequestListItem{
		{ID: uuid.New(), CustomerID: testCustomerID, ProductName: "Teak Dining Table", Quantity: 4, Status: "submitted", CreatedAt: time.Now()},
		{ID: uuid.New(), CustomerID: testCustomerID, ProductName: "Oak Bookshelf", Quantity: 1, Status: "quoted", CreatedAt: time.Now()},
	}

	s.Run("success: returns the caller's requests", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), queries.RequestFilter{}).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests", nil, "bearer-token")

		var response []*resdto.RequestListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: status filter is passed through", func() {
		status := "quoted"
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), queries.RequestFilter{Status: &status}).
			Return(items[1:], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests?status=quoted", nil, "bearer-token")

		var response []*resdto.RequestListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("success: customer_id filter is passed through", func() {
		customerID := uuid.New()
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), queries.RequestFilter{CustomerID: &customerID}).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests?customer_id="+customerID.String(), nil, "bearer-token")

		var response []*resdto.RequestListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("error: 400 Bad Request for a malformed customer_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests?customer_id=not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})
}

// ================================================================================
// TestQuote
// ================================================================================

func (s *RequestHandlerTestSuite) TestQuote() {
	requestID := uuid.New()
	url := "/requests/" + requestID.String() + "/quote"
	reqBody := map[string]any{"price": "110000", "note": "includes delivery"}

	s.Run("success: returns 200 OK with the quoted view", func() {
		view := sampleView(requestID, "quoted")
		s.mockCommands.EXPECT().Quote(gomock.Any(), gomock.Any(), requestID, gomock.Any(), "includes delivery").
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("quoted", response.Status)
	})

	s.Run("error: 400 Bad Request when price is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"note": "no price"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 409 Conflict on an illegal transition", func() {
		s.mockCommands.EXPECT().Quote(gomock.Any(), gomock.Any(), requestID, gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Transition not allowed")
	})
}

// ================================================================================
// TestRespond
// ================================================================================

func (s *RequestHandlerTestSuite) TestRespond() {
	requestID := uuid.New()
	url := "/requests/" + requestID.String() + "/response"

	s.Run("success: each allowed response value is forwarded", func() {
		for _, response := range []string{"accepted", "declined", "revise"} {
			s.Run(response, func() {
				view := sampleView(requestID, "customer_accepted")
				s.mockCommands.EXPECT().Respond(gomock.Any(), gomock.Any(), requestID, response, "").
					Return(view, nil).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"response": response}, "bearer-token")
				httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
			})
		}
	})

	s.Run("error: 400 Bad Request for an unknown response value", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"response": "maybe"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 403 Forbidden when responding to someone else's quote", func() {
		s.mockCommands.EXPECT().Respond(gomock.Any(), gomock.Any(), requestID, "accepted", "").
			Return(nil, errs.ErrUnauthorized).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"response": "accepted"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Not permitted")
	})
}

// ================================================================================
// TestComplete
// ================================================================================

func (s *RequestHandlerTestSuite) TestComplete() {
	requestID := uuid.New()
	url := "/requests/" + requestID.String() + "/complete"

	s.Run("success: returns the completed view", func() {
		view := sampleView(requestID, "completed")
		s.mockCommands.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), requestID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("completed", response.Status)
	})

	s.Run("error: 409 Conflict when not in transit", func() {
		s.mockCommands.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), requestID).
			Return(nil, errs.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Transition not allowed")
	})
}
