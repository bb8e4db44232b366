package api

import (
	"errors"
	"net/http"

	"quoteflow/internal/handler/httperr"
	"quoteflow/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// handleUseCaseError maps usecase sentinels to HTTP statuses. Anything
// unmapped is an internal error; the cause stays on the gin error stack for
// the logging middleware.
func handleUseCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput),
		errors.Is(err, errs.ErrIdempotencyKeyRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)

	case errors.Is(err, errs.ErrUnauthorized):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not permitted for this action", nil)

	case errors.Is(err, errs.ErrRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Request not found", nil)

	case errors.Is(err, errs.ErrOfferNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)

	case errors.Is(err, errs.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)

	case errors.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Transition not allowed from current status", nil)

	case errors.Is(err, errs.ErrOfferNotNegotiable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request is not open for offers", nil)

	case errors.Is(err, errs.ErrOfferNotPending):
		httperr.AbortWithError(c, http.StatusConflict, err, "Offer is already resolved", nil)

	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrIdempotencyInProgress),
		errors.Is(err, errs.ErrIdempotencyMismatch):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request conflicts with concurrent state", nil)

	case errors.Is(err, errs.ErrDistanceUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Distance service unavailable", nil)

	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
