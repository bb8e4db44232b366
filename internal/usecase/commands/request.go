package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"quoteflow/internal/domain/actor"
	"quoteflow/internal/domain/negotiation"
	"quoteflow/internal/domain/request"
	"quoteflow/internal/infra"
	"quoteflow/internal/pkg/clock"
	"quoteflow/internal/pkg/errs"
	"quoteflow/internal/usecase/queries"
	"quoteflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const idempotencyKeyTTL = 24 * time.Hour

type CreateRequestParams struct {
	ProductID        uuid.UUID  `json:"product_id"`
	Quantity         int        `json:"quantity"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`
	DeliveryAddress  string     `json:"delivery_address"`
	Note             string     `json:"note,omitempty"`
}

type CreateRequestResult struct {
	Request    *queries.RequestView
	IsReplayed bool
}

type RequestCommands interface {
	Create(ctx context.Context, a actor.Actor, params CreateRequestParams, idempotencyKey uuid.UUID) (*CreateRequestResult, error)
	BeginReview(ctx context.Context, a actor.Actor, requestID uuid.UUID, note string) (*queries.RequestView, error)
	Quote(ctx context.Context, a actor.Actor, requestID uuid.UUID, price decimal.Decimal, note string) (*queries.RequestView, error)
	Respond(ctx context.Context, a actor.Actor, requestID uuid.UUID, response string, note string) (*queries.RequestView, error)
	AssignTransporter(ctx context.Context, a actor.Actor, requestID, transporterID uuid.UUID, note string) (*queries.RequestView, error)
	MarkCompleted(ctx context.Context, a actor.Actor, requestID uuid.UUID) (*queries.RequestView, error)
}

type requestCommandsImpl struct {
	uow            shared.UnitOfWork
	requestQueries queries.RequestQueries
	clock          clock.Clock
}

func NewRequestCommands(
	uow shared.UnitOfWork,
	requestQueries queries.RequestQueries,
	clock clock.Clock,
) RequestCommands {
	return &requestCommandsImpl{
		uow:            uow,
		requestQueries: requestQueries,
		clock:          clock,
	}
}

func (c *requestCommandsImpl) Create(
	ctx context.Context,
	a actor.Actor,
	params CreateRequestParams,
	idempotencyKey uuid.UUID,
) (*CreateRequestResult, error) {
	if !a.Is(actor.RoleCustomer) {
		return nil, errs.ErrUnauthorized
	}
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}

	requestHash := calculateRequestHash(params)
	expiresAt := c.clock.Now().Add(idempotencyKeyTTL)

	var (
		resultID uuid.UUID
		replayed bool
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayedID, err := claimIdempotencyKey(ctx, tx, c.clock, idempotencyKey, a.ID, "POST /requests", requestHash, expiresAt)
		if err != nil {
			return err
		}
		if replayedID != nil {
			resultID = *replayedID
			replayed = true
			return nil
		}

		if _, err := tx.Reads().ProductByID(ctx, params.ProductID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrProductNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		entity, err := request.NewRequest(
			a.ID,
			params.ProductID,
			params.Quantity,
			params.ExpectedDelivery,
			params.DeliveryAddress,
			params.Note,
			c.clock.Now(),
		)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidInput)
		}

		if err := tx.Requests().Create(ctx, entity); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Idempotency().UpdateStatusCompleted(ctx, idempotencyKey, a.ID, entity.ID()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		resultID = entity.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.requestQueries.GetByID(ctx, a, resultID)
	if err != nil {
		return nil, err
	}
	return &CreateRequestResult{Request: view, IsReplayed: replayed}, nil
}

// claimIdempotencyKey inserts the key or resolves what an existing one means.
// A non-nil ID means the original call already completed and should be
// replayed. The stored result ID is whatever entity the guarded endpoint
// creates: a request for request creation, an offer for offer submission.
func claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	clk clock.Clock,
	key, userID uuid.UUID,
	endpoint, requestHash string,
	expiresAt time.Time,
) (*uuid.UUID, error) {
	err := tx.Idempotency().TryInsert(ctx, key, userID, endpoint, requestHash, expiresAt)
	if err == nil {
		return nil, nil
	}
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.RequestHash != requestHash {
			return nil, errs.ErrIdempotencyMismatch
		}
		if existing.ResultRequestID == nil {
			return nil, errs.New("completed idempotency key missing result request ID")
		}
		return existing.ResultRequestID, nil

	case "processing":
		if existing.ExpiresAt.Before(clk.Now()) {
			claimed, err := tx.Idempotency().ClaimExpiredKey(ctx, key, userID, requestHash, expiresAt)
			if err != nil {
				return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if claimed > 0 {
				return nil, nil
			}
		}
		if existing.RequestHash != requestHash {
			return nil, errs.ErrIdempotencyMismatch
		}
		return nil, errs.ErrIdempotencyInProgress

	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (c *requestCommandsImpl) BeginReview(ctx context.Context, a actor.Actor, requestID uuid.UUID, note string) (*queries.RequestView, error) {
	return c.mutate(ctx, a, requestID, func(r *request.Request) error {
		return r.BeginReview(a, note, c.clock.Now())
	})
}

func (c *requestCommandsImpl) Quote(ctx context.Context, a actor.Actor, requestID uuid.UUID, price decimal.Decimal, note string) (*queries.RequestView, error) {
	return c.mutate(ctx, a, requestID, func(r *request.Request) error {
		return r.Quote(a, price, note, c.clock.Now())
	})
}

// Respond applies the customer's answer and settles any live offer with it:
// accepting a pending counter adopts the counter's amount, and a response
// that closes negotiation rejects whatever offer is still pending.
func (c *requestCommandsImpl) Respond(ctx context.Context, a actor.Actor, requestID uuid.UUID, response string, note string) (*queries.RequestView, error) {
	resp, err := request.NewResponse(response)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := findRequestForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}

		pending, err := findPendingOffer(ctx, tx, requestID)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		if resp == request.ResponseAccepted && pending != nil && pending.Type() == negotiation.TypeAdminCounter {
			if err := r.AcceptCounter(a, pending.TotalAmount(), note, now); err != nil {
				return convertDomainErr(err)
			}
			if err := pending.Accept(); err != nil {
				return errs.Mark(err, errs.ErrOfferNotPending)
			}
			if err := tx.Offers().UpdateStatus(ctx, pending.ID(), pending.Status()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			pending = nil
		} else {
			if err := r.Respond(a, resp, note, now); err != nil {
				return convertDomainErr(err)
			}
		}

		if pending != nil && !r.Status().IsNegotiable() {
			if err := pending.Reject(); err != nil {
				return errs.Mark(err, errs.ErrOfferNotPending)
			}
			if err := tx.Offers().UpdateStatus(ctx, pending.ID(), pending.Status()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Requests().Update(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.requestQueries.GetByID(ctx, a, requestID)
}

func (c *requestCommandsImpl) AssignTransporter(ctx context.Context, a actor.Actor, requestID, transporterID uuid.UUID, note string) (*queries.RequestView, error) {
	return c.mutate(ctx, a, requestID, func(r *request.Request) error {
		return r.AssignTransporter(a, transporterID, note, c.clock.Now())
	})
}

func (c *requestCommandsImpl) MarkCompleted(ctx context.Context, a actor.Actor, requestID uuid.UUID) (*queries.RequestView, error) {
	return c.mutate(ctx, a, requestID, func(r *request.Request) error {
		return r.MarkCompleted(a, c.clock.Now())
	})
}

// mutate runs a single-entity transition under a row lock and returns the
// fresh view after commit.
func (c *requestCommandsImpl) mutate(
	ctx context.Context,
	a actor.Actor,
	requestID uuid.UUID,
	fn func(r *request.Request) error,
) (*queries.RequestView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := findRequestForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return convertDomainErr(err)
		}
		if err := tx.Requests().Update(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.requestQueries.GetByID(ctx, a, requestID)
}

func findRequestForUpdate(ctx context.Context, tx shared.Tx, requestID uuid.UUID) (*request.Request, error) {
	r, err := tx.Requests().FindByIDForUpdate(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return r, nil
}

func findPendingOffer(ctx context.Context, tx shared.Tx, requestID uuid.UUID) (*negotiation.Offer, error) {
	pending, err := tx.Offers().FindPendingByRequestForUpdate(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return pending, nil
}

func convertDomainErr(err error) error {
	switch {
	case errors.Is(err, request.ErrActorNotPermitted),
		errors.Is(err, request.ErrNotRequestCustomer),
		errors.Is(err, request.ErrWrongTransporter):
		return errs.Mark(err, errs.ErrUnauthorized)
	case errors.Is(err, request.ErrInvalidTransition):
		return errs.Mark(err, errs.ErrInvalidTransition)
	default:
		return errs.Mark(err, errs.ErrInvalidInput)
	}
}

func calculateRequestHash(params CreateRequestParams) string {
	data, _ := json.Marshal(params)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
