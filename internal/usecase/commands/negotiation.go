package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"quoteflow/internal/domain/actor"
	"quoteflow/internal/domain/negotiation"
	"quoteflow/internal/infra"
	"quoteflow/internal/pkg/clock"
	"quoteflow/internal/pkg/errs"
	"quoteflow/internal/usecase/queries"
	"quoteflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferItemParams struct {
	ProductID      uuid.UUID       `json:"product_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Specifications string          `json:"specifications,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

type SubmitOfferParams struct {
	OfferType   string            `json:"offer_type"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Items       []OfferItemParams `json:"items"`
	Notes       string            `json:"notes,omitempty"`
}

type SubmitOfferResult struct {
	Offer      *queries.OfferView
	IsReplayed bool
}

type ResolveOutcome string

const (
	OutcomeAccepted ResolveOutcome = "accepted"
	OutcomeRejected ResolveOutcome = "rejected"
)

type NegotiationCommands interface {
	// SubmitOffer appends a negotiation round. Any offer still pending on the
	// request is rejected first, so at most one offer is ever live. The
	// idempotency key replays the originally created round on retry.
	SubmitOffer(ctx context.Context, a actor.Actor, requestID uuid.UUID, params SubmitOfferParams, idempotencyKey uuid.UUID) (*SubmitOfferResult, error)
	// ResolveOffer settles a pending offer. Accepting a customer offer adopts
	// its amount as the agreed price; counters are only accepted through the
	// customer's response.
	ResolveOffer(ctx context.Context, a actor.Actor, offerID uuid.UUID, outcome string) (*queries.RequestView, error)
}

type negotiationCommandsImpl struct {
	uow            shared.UnitOfWork
	offerQueries   queries.OfferQueries
	requestQueries queries.RequestQueries
	clock          clock.Clock
}

func NewNegotiationCommands(
	uow shared.UnitOfWork,
	offerQueries queries.OfferQueries,
	requestQueries queries.RequestQueries,
	clock clock.Clock,
) NegotiationCommands {
	return &negotiationCommandsImpl{
		uow:            uow,
		offerQueries:   offerQueries,
		requestQueries: requestQueries,
		clock:          clock,
	}
}

func (c *negotiationCommandsImpl) SubmitOffer(
	ctx context.Context,
	a actor.Actor,
	requestID uuid.UUID,
	params SubmitOfferParams,
	idempotencyKey uuid.UUID,
) (*SubmitOfferResult, error) {
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}
	offerType, err := negotiation.NewOfferType(params.OfferType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}

	offerHash := calculateOfferHash(requestID, params)
	expiresAt := c.clock.Now().Add(idempotencyKeyTTL)

	var (
		offerID  uuid.UUID
		replayed bool
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayedID, err := claimIdempotencyKey(ctx, tx, c.clock, idempotencyKey, a.ID, "POST /requests/:id/offers", offerHash, expiresAt)
		if err != nil {
			return err
		}
		if replayedID != nil {
			offerID = *replayedID
			replayed = true
			return nil
		}

		r, err := findRequestForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if !r.Status().IsNegotiable() {
			return errs.ErrOfferNotNegotiable
		}
		if err := authorizeOffer(a, offerType, r.CustomerID()); err != nil {
			return err
		}

		items := make([]negotiation.Item, len(params.Items))
		for i, it := range params.Items {
			items[i] = negotiation.Item{
				ProductID:      it.ProductID,
				Quantity:       it.Quantity,
				UnitPrice:      it.UnitPrice,
				TotalPrice:     it.TotalPrice,
				Specifications: it.Specifications,
				Notes:          it.Notes,
			}
		}
		offer, err := negotiation.NewOffer(requestID, a.ID, offerType, params.TotalAmount, items, params.Notes, c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidInput)
		}

		// Supersession: the new round replaces whatever was still pending.
		pending, err := findPendingOffer(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if pending != nil {
			if err := pending.Reject(); err != nil {
				return errs.Mark(err, errs.ErrOfferNotPending)
			}
			if err := tx.Offers().UpdateStatus(ctx, pending.ID(), pending.Status()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Offers().Create(ctx, offer); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Idempotency().UpdateStatusCompleted(ctx, idempotencyKey, a.ID, offer.ID()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		offerID = offer.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.findOfferView(ctx, a, requestID, offerID)
	if err != nil {
		return nil, err
	}
	return &SubmitOfferResult{Offer: view, IsReplayed: replayed}, nil
}

// calculateOfferHash covers the target request as well as the payload, so a
// key reused against another request is a mismatch rather than a replay.
func calculateOfferHash(requestID uuid.UUID, params SubmitOfferParams) string {
	payload := struct {
		RequestID uuid.UUID         `json:"request_id"`
		Params    SubmitOfferParams `json:"params"`
	}{RequestID: requestID, Params: params}
	data, _ := json.Marshal(payload)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (c *negotiationCommandsImpl) ResolveOffer(
	ctx context.Context,
	a actor.Actor,
	offerID uuid.UUID,
	outcome string,
) (*queries.RequestView, error) {
	if !a.Is(actor.RoleManager) {
		return nil, errs.ErrUnauthorized
	}
	if ResolveOutcome(outcome) != OutcomeAccepted && ResolveOutcome(outcome) != OutcomeRejected {
		return nil, errs.ErrInvalidInput
	}

	var requestID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		offer, err := tx.Offers().FindByIDForUpdate(ctx, offerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrOfferNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		requestID = offer.RequestID()

		if ResolveOutcome(outcome) == OutcomeRejected {
			if err := offer.Reject(); err != nil {
				return errs.Mark(err, errs.ErrOfferNotPending)
			}
			if err := tx.Offers().UpdateStatus(ctx, offer.ID(), offer.Status()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			return nil
		}

		if offer.Type() != negotiation.TypeCustomerOffer {
			return errs.ErrInvalidInput
		}
		if err := offer.Accept(); err != nil {
			return errs.Mark(err, errs.ErrOfferNotPending)
		}

		r, err := findRequestForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if err := r.AcceptOffer(offer.TotalAmount(), c.clock.Now()); err != nil {
			return convertDomainErr(err)
		}

		if err := tx.Requests().Update(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Offers().UpdateStatus(ctx, offer.ID(), offer.Status()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.requestQueries.GetByID(ctx, a, requestID)
}

func authorizeOffer(a actor.Actor, offerType negotiation.OfferType, customerID uuid.UUID) error {
	switch offerType {
	case negotiation.TypeCustomerOffer:
		if a.Is(actor.RoleCustomer) && a.ID == customerID {
			return nil
		}
	case negotiation.TypeAdminCounter:
		if a.Is(actor.RoleManager) {
			return nil
		}
	}
	return errs.ErrUnauthorized
}

func (c *negotiationCommandsImpl) findOfferView(ctx context.Context, a actor.Actor, requestID, offerID uuid.UUID) (*queries.OfferView, error) {
	history, err := c.offerQueries.History(ctx, a, requestID)
	if err != nil {
		return nil, err
	}
	for _, v := range history {
		if v.ID == offerID {
			return v, nil
		}
	}
	return nil, errs.ErrOfferNotFound
}
