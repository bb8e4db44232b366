package shared

import (
	"context"
	"time"

	"quoteflow/internal/domain/negotiation"
	"quoteflow/internal/domain/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	Requests() RequestRepository
	Offers() OfferRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
}

type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

// Minimal snapshot for command-side validation
type ProductSnapshot struct {
	ID                    uuid.UUID
	Name                  string
	BasePrice             decimal.Decimal
	CustomizationFee      decimal.Decimal
	InstallationAvailable bool
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	RequestHash     string
	Status          string
	ResultRequestID *uuid.UUID
	ExpiresAt       time.Time
}

type RequestRepository interface {
	Create(ctx context.Context, req *request.Request) error
	// FindByIDForUpdate takes a row lock so concurrent transitions serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*request.Request, error)
	Update(ctx context.Context, req *request.Request) error
}

type OfferRepository interface {
	Create(ctx context.Context, offer *negotiation.Offer) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*negotiation.Offer, error)
	// FindPendingByRequestForUpdate returns the single live offer for the
	// request, or a NOT_FOUND repository error when none is pending.
	FindPendingByRequestForUpdate(ctx context.Context, requestID uuid.UUID) (*negotiation.Offer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status negotiation.OfferStatus) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	UpdateStatusCompleted(ctx context.Context, key, userID, resultRequestID uuid.UUID) error
	ClaimExpiredKey(ctx context.Context, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
}
