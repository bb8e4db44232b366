//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"quoteflow/internal/domain/actor"
	"quoteflow/internal/pkg/errs"
	"quoteflow/internal/usecase/commands"
	"quoteflow/internal/usecase/queries"
	"quoteflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	customer    = actor.New(uuid.New(), actor.RoleCustomer)
	manager     = actor.New(uuid.New(), actor.RoleManager)
	transporter = actor.New(uuid.New(), actor.RoleTransporter)
)

func createParams(productID uuid.UUID) commands.CreateRequestParams {
	return commands.CreateRequestParams{
		ProductID:       productID,
		Quantity:        4,
		DeliveryAddress: "MG Road, Pune",
		Note:            "need it before the wedding",
	}
}

// seedRequest creates a request through the command path and returns its view.
func seedRequest(t *testing.T, f *fixture, productID uuid.UUID) *queries.RequestView {
	t.Helper()
	res, err := f.requestCommands.Create(context.Background(), customer, createParams(productID), uuid.New())
	require.NoError(t, err)
	require.False(t, res.IsReplayed)
	return res.Request
}

func hashOf(t *testing.T, params commands.CreateRequestParams) string {
	t.Helper()
	data, err := json.Marshal(params)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestRequestCommands_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a submitted request", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)

		res, err := f.requestCommands.Create(ctx, customer, createParams(productID), uuid.New())
		require.NoError(t, err)

		assert.False(t, res.IsReplayed)
		assert.Equal(t, "submitted", res.Request.Status)
		assert.Equal(t, customer.ID, res.Request.CustomerID)
		assert.Equal(t, "Teak Dining Table", res.Request.ProductName)
		assert.Nil(t, res.Request.QuotedPrice)
	})

	t.Run("only customers may create", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)

		_, err := f.requestCommands.Create(ctx, manager, createParams(productID), uuid.New())
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("idempotency key is mandatory", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)

		_, err := f.requestCommands.Create(ctx, customer, createParams(productID), uuid.Nil)
		assert.ErrorIs(t, err, errs.ErrIdempotencyKeyRequired)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newFixture()
		_, err := f.requestCommands.Create(ctx, customer, createParams(uuid.New()), uuid.New())
		assert.ErrorIs(t, err, errs.ErrProductNotFound)
	})

	t.Run("invalid quantity surfaces as invalid input", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)
		params := createParams(productID)
		params.Quantity = 0

		_, err := f.requestCommands.Create(ctx, customer, params, uuid.New())
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestRequestCommands_CreateIdempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("same key and payload replays the original result", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)
		key := uuid.New()

		first, err := f.requestCommands.Create(ctx, customer, createParams(productID), key)
		require.NoError(t, err)

		second, err := f.requestCommands.Create(ctx, customer, createParams(productID), key)
		require.NoError(t, err)

		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Request.ID, second.Request.ID)
		assert.Len(t, f.store.requests, 1, "replay must not create a second request")
	})

	t.Run("same key with a different payload is rejected", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)
		key := uuid.New()

		_, err := f.requestCommands.Create(ctx, customer, createParams(productID), key)
		require.NoError(t, err)

		altered := createParams(productID)
		altered.Quantity = 99
		_, err = f.requestCommands.Create(ctx, customer, altered, key)
		assert.ErrorIs(t, err, errs.ErrIdempotencyMismatch)
	})

	t.Run("key still processing blocks a concurrent retry", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)
		key := uuid.New()
		params := createParams(productID)

		f.store.idem[idemKey(key, customer.ID)] = &shared.IdempotencyRecord{
			Key:         key,
			UserID:      customer.ID,
			Endpoint:    "POST /requests",
			RequestHash: hashOf(t, params),
			Status:      "processing",
			ExpiresAt:   f.clk.Now().Add(time.Hour),
		}

		_, err := f.requestCommands.Create(ctx, customer, params, key)
		assert.ErrorIs(t, err, errs.ErrIdempotencyInProgress)
	})

	t.Run("an expired processing key is reclaimed", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)
		key := uuid.New()
		params := createParams(productID)

		f.store.idem[idemKey(key, customer.ID)] = &shared.IdempotencyRecord{
			Key:         key,
			UserID:      customer.ID,
			Endpoint:    "POST /requests",
			RequestHash: hashOf(t, params),
			Status:      "processing",
			ExpiresAt:   f.clk.Now().Add(-time.Minute),
		}

		res, err := f.requestCommands.Create(ctx, customer, params, key)
		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
		assert.Len(t, f.store.requests, 1)
	})
}

func TestRequestCommands_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown request", func(t *testing.T) {
		f := newFixture()
		_, err := f.requestCommands.BeginReview(ctx, manager, uuid.New(), "")
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})

	t.Run("wrong role maps to unauthorized", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)
		view := seedRequest(t, f, productID)

		_, err := f.requestCommands.BeginReview(ctx, customer, view.ID, "")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("illegal transition maps to conflict", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)
		view := seedRequest(t, f, productID)

		// quote before review
		_, err := f.requestCommands.Quote(ctx, manager, view.ID, decimal.NewFromInt(110000), "")
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("review then quote", func(t *testing.T) {
		f := newFixture()
		productID := f.seedProduct("Teak Dining Table", 25000)
		view := seedRequest(t, f, productID)

		reviewed, err := f.requestCommands.BeginReview(ctx, manager, view.ID, "checking stock")
		require.NoError(t, err)
		assert.Equal(t, "manager_review", reviewed.Status)
		require.NotNil(t, reviewed.ManagerID)
		assert.Equal(t, manager.ID, *reviewed.ManagerID)

		quoted, err := f.requestCommands.Quote(ctx, manager, view.ID, decimal.NewFromInt(110000), "includes delivery")
		require.NoError(t, err)
		assert.Equal(t, "quoted", quoted.Status)
		require.NotNil(t, quoted.QuotedPrice)
		assert.Equal(t, "110000.00", quoted.QuotedPrice.StringFixed(2))
	})
}

func TestRequestCommands_Respond(t *testing.T) {
	ctx := context.Background()

	quoteRequest := func(t *testing.T, f *fixture) uuid.UUID {
		t.Helper()
		productID := f.seedProduct("Teak Dining Table", 25000)
		view := seedRequest(t, f, productID)
		_, err := f.requestCommands.BeginReview(ctx, manager, view.ID, "")
		require.NoError(t, err)
		_, err = f.requestCommands.Quote(ctx, manager, view.ID, decimal.NewFromInt(110000), "")
		require.NoError(t, err)
		return view.ID
	}

	t.Run("accept without a live offer keeps the quoted price", func(t *testing.T) {
		f := newFixture()
		id := quoteRequest(t, f)

		view, err := f.requestCommands.Respond(ctx, customer, id, "accepted", "")
		require.NoError(t, err)
		assert.Equal(t, "customer_accepted", view.Status)
		assert.Equal(t, "110000.00", view.QuotedPrice.StringFixed(2))
	})

	t.Run("accept with a pending counter adopts the counter amount", func(t *testing.T) {
		f := newFixture()
		id := quoteRequest(t, f)

		counter, err := submitOffer(f, manager, id, commands.SubmitOfferParams{
			OfferType:   "admin_counter",
			TotalAmount: decimal.NewFromInt(105000),
			Items: []commands.OfferItemParams{{
				ProductID:  f.store.requests[id].ProductID(),
				Quantity:   4,
				UnitPrice:  decimal.NewFromInt(26250),
				TotalPrice: decimal.NewFromInt(105000),
			}},
		})
		require.NoError(t, err)

		view, err := f.requestCommands.Respond(ctx, customer, id, "accepted", "deal")
		require.NoError(t, err)
		assert.Equal(t, "customer_accepted", view.Status)
		assert.Equal(t, "105000.00", view.QuotedPrice.StringFixed(2))

		offer, err := f.store.offerByID(counter.ID)
		require.NoError(t, err)
		assert.Equal(t, "accepted", string(offer.Status()))
	})

	t.Run("decline rejects whatever offer is still pending", func(t *testing.T) {
		f := newFixture()
		id := quoteRequest(t, f)

		pending, err := submitOffer(f, customer, id, commands.SubmitOfferParams{
			OfferType:   "customer_offer",
			TotalAmount: decimal.NewFromInt(100000),
			Items: []commands.OfferItemParams{{
				ProductID:  f.store.requests[id].ProductID(),
				Quantity:   4,
				UnitPrice:  decimal.NewFromInt(25000),
				TotalPrice: decimal.NewFromInt(100000),
			}},
		})
		require.NoError(t, err)

		view, err := f.requestCommands.Respond(ctx, customer, id, "declined", "found cheaper")
		require.NoError(t, err)
		assert.Equal(t, "customer_declined", view.Status)

		offer, err := f.store.offerByID(pending.ID)
		require.NoError(t, err)
		assert.Equal(t, "rejected", string(offer.Status()))
	})

	t.Run("revise reopens review and clears the quote", func(t *testing.T) {
		f := newFixture()
		id := quoteRequest(t, f)

		view, err := f.requestCommands.Respond(ctx, customer, id, "revise", "can you do better")
		require.NoError(t, err)
		assert.Equal(t, "manager_review", view.Status)
		assert.Nil(t, view.QuotedPrice)
	})

	t.Run("unknown response value", func(t *testing.T) {
		f := newFixture()
		id := quoteRequest(t, f)

		_, err := f.requestCommands.Respond(ctx, customer, id, "maybe", "")
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestRequestCommands_Fulfillment(t *testing.T) {
	ctx := context.Background()

	acceptedRequest := func(t *testing.T, f *fixture) uuid.UUID {
		t.Helper()
		productID := f.seedProduct("Teak Dining Table", 25000)
		view := seedRequest(t, f, productID)
		_, err := f.requestCommands.BeginReview(ctx, manager, view.ID, "")
		require.NoError(t, err)
		_, err = f.requestCommands.Quote(ctx, manager, view.ID, decimal.NewFromInt(110000), "")
		require.NoError(t, err)
		_, err = f.requestCommands.Respond(ctx, customer, view.ID, "accepted", "")
		require.NoError(t, err)
		return view.ID
	}

	t.Run("assign then complete", func(t *testing.T) {
		f := newFixture()
		id := acceptedRequest(t, f)

		assigned, err := f.requestCommands.AssignTransporter(ctx, manager, id, transporter.ID, "friday slot")
		require.NoError(t, err)
		assert.Equal(t, "in_transit", assigned.Status)
		require.NotNil(t, assigned.TransporterID)
		assert.Equal(t, transporter.ID, *assigned.TransporterID)

		done, err := f.requestCommands.MarkCompleted(ctx, transporter, id)
		require.NoError(t, err)
		assert.Equal(t, "completed", done.Status)
	})

	t.Run("only the assigned transporter may complete", func(t *testing.T) {
		f := newFixture()
		id := acceptedRequest(t, f)

		_, err := f.requestCommands.AssignTransporter(ctx, manager, id, transporter.ID, "")
		require.NoError(t, err)

		stranger := actor.New(uuid.New(), actor.RoleTransporter)
		_, err = f.requestCommands.MarkCompleted(ctx, stranger, id)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("only managers assign transporters", func(t *testing.T) {
		f := newFixture()
		id := acceptedRequest(t, f)

		_, err := f.requestCommands.AssignTransporter(ctx, transporter, id, transporter.ID, "")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}
