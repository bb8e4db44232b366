package errs

import "errors"

// Sentinel errors shared by the usecase layers. Handlers map these to HTTP
// statuses; nothing below the handler layer knows about HTTP.
var (
	// Lifecycle errors
	ErrRequestNotFound   = errors.New("request not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnauthorized      = errors.New("actor not permitted for this action")
	ErrConflict          = errors.New("request changed concurrently")

	// Negotiation errors
	ErrOfferNotFound      = errors.New("offer not found")
	ErrOfferNotPending    = errors.New("offer is not pending")
	ErrOfferNotNegotiable = errors.New("request is not open for offers")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Pricing / delivery errors
	ErrProductNotFound     = errors.New("product not found")
	ErrDistanceUnavailable = errors.New("distance unavailable")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyMismatch    = errors.New("idempotency key reused with different payload")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
