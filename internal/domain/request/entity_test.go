//go:build unit

package request_test

import (
	"testing"
	"time"

	"quoteflow/internal/domain/actor"
	"quoteflow/internal/domain/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	customerID    = uuid.New()
	managerID     = uuid.New()
	transporterID = uuid.New()
	productID     = uuid.New()

	customer    = actor.New(customerID, actor.RoleCustomer)
	manager     = actor.New(managerID, actor.RoleManager)
	transporter = actor.New(transporterID, actor.RoleTransporter)

	baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

func price(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

// requestAt reconstructs a request already advanced to the given status, with
// the ids a request in that status would carry.
func requestAt(t *testing.T, status request.Status) *request.Request {
	t.Helper()

	var (
		quoted  *decimal.Decimal
		mgr     *uuid.UUID
		carrier *uuid.UUID
	)
	switch status {
	case request.StatusSubmitted:
	case request.StatusManagerReview:
		mgr = &managerID
	case request.StatusQuoted, request.StatusCustomerDeclined:
		mgr = &managerID
		quoted = price("110000")
	case request.StatusCustomerAccepted:
		mgr = &managerID
		quoted = price("110000")
	case request.StatusInTransit, request.StatusCompleted:
		mgr = &managerID
		quoted = price("110000")
		carrier = &transporterID
	default:
		t.Fatalf("unhandled status %q", status)
	}

	return request.Reconstruct(
		uuid.New(), customerID, productID,
		3, status, quoted, nil,
		"221B Baker Street, Pune",
		mgr, carrier,
		"", baseTime, baseTime,
	)
}

func TestNewRequest(t *testing.T) {
	t.Run("creates a submitted request", func(t *testing.T) {
		r, err := request.NewRequest(customerID, productID, 3, nil, "  221B Baker Street, Pune  ", "urgent", baseTime)
		require.NoError(t, err)

		assert.Equal(t, request.StatusSubmitted, r.Status())
		assert.Equal(t, customerID, r.CustomerID())
		assert.Equal(t, "221B Baker Street, Pune", r.DeliveryAddress())
		assert.Nil(t, r.QuotedPrice())
		assert.Contains(t, r.Notes(), "[customer 2026-03-01 10:00] urgent")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := request.NewRequest(customerID, productID, 0, nil, "addr", "", baseTime)
		assert.ErrorIs(t, err, request.ErrInvalidQuantity)
	})

	t.Run("rejects blank address", func(t *testing.T) {
		_, err := request.NewRequest(customerID, productID, 1, nil, "   ", "", baseTime)
		assert.ErrorIs(t, err, request.ErrEmptyAddress)
	})
}

func TestRequest_Transitions(t *testing.T) {
	later := baseTime.Add(time.Hour)

	cases := []struct {
		name   string
		from   request.Status
		run    func(r *request.Request) error
		errIs  error
		wantTo request.Status
	}{
		{
			name:   "manager begins review",
			from:   request.StatusSubmitted,
			run:    func(r *request.Request) error { return r.BeginReview(manager, "", later) },
			wantTo: request.StatusManagerReview,
		},
		{
			name:  "customer cannot begin review",
			from:  request.StatusSubmitted,
			run:   func(r *request.Request) error { return r.BeginReview(customer, "", later) },
			errIs: request.ErrActorNotPermitted,
		},
		{
			name:  "review is only legal from submitted",
			from:  request.StatusQuoted,
			run:   func(r *request.Request) error { return r.BeginReview(manager, "", later) },
			errIs: request.ErrInvalidTransition,
		},
		{
			name:   "manager quotes from review",
			from:   request.StatusManagerReview,
			run:    func(r *request.Request) error { return r.Quote(manager, decimal.NewFromInt(110000), "", later) },
			wantTo: request.StatusQuoted,
		},
		{
			name:  "quote requires a positive price",
			from:  request.StatusManagerReview,
			run:   func(r *request.Request) error { return r.Quote(manager, decimal.Zero, "", later) },
			errIs: request.ErrNonPositiveQuote,
		},
		{
			name:  "quote is only legal from review",
			from:  request.StatusSubmitted,
			run:   func(r *request.Request) error { return r.Quote(manager, decimal.NewFromInt(1), "", later) },
			errIs: request.ErrInvalidTransition,
		},
		{
			name:   "customer accepts quote",
			from:   request.StatusQuoted,
			run:    func(r *request.Request) error { return r.Respond(customer, request.ResponseAccepted, "", later) },
			wantTo: request.StatusCustomerAccepted,
		},
		{
			name:   "customer declines quote",
			from:   request.StatusQuoted,
			run:    func(r *request.Request) error { return r.Respond(customer, request.ResponseDeclined, "", later) },
			wantTo: request.StatusCustomerDeclined,
		},
		{
			name:   "customer requests revision",
			from:   request.StatusQuoted,
			run:    func(r *request.Request) error { return r.Respond(customer, request.ResponseRevise, "", later) },
			wantTo: request.StatusManagerReview,
		},
		{
			name: "a different customer cannot respond",
			from: request.StatusQuoted,
			run: func(r *request.Request) error {
				other := actor.New(uuid.New(), actor.RoleCustomer)
				return r.Respond(other, request.ResponseAccepted, "", later)
			},
			errIs: request.ErrNotRequestCustomer,
		},
		{
			name:  "manager cannot respond for the customer",
			from:  request.StatusQuoted,
			run:   func(r *request.Request) error { return r.Respond(manager, request.ResponseAccepted, "", later) },
			errIs: request.ErrActorNotPermitted,
		},
		{
			name:  "respond is only legal from quoted",
			from:  request.StatusInTransit,
			run:   func(r *request.Request) error { return r.Respond(customer, request.ResponseAccepted, "", later) },
			errIs: request.ErrInvalidTransition,
		},
		{
			name: "manager assigns transporter after acceptance",
			from: request.StatusCustomerAccepted,
			run: func(r *request.Request) error {
				return r.AssignTransporter(manager, transporterID, "", later)
			},
			wantTo: request.StatusInTransit,
		},
		{
			name: "assignment requires a transporter id",
			from: request.StatusCustomerAccepted,
			run: func(r *request.Request) error {
				return r.AssignTransporter(manager, uuid.Nil, "", later)
			},
			errIs: request.ErrMissingTransporter,
		},
		{
			name: "assignment is only legal after acceptance",
			from: request.StatusQuoted,
			run: func(r *request.Request) error {
				return r.AssignTransporter(manager, transporterID, "", later)
			},
			errIs: request.ErrInvalidTransition,
		},
		{
			name:   "assigned transporter completes delivery",
			from:   request.StatusInTransit,
			run:    func(r *request.Request) error { return r.MarkCompleted(transporter, later) },
			wantTo: request.StatusCompleted,
		},
		{
			name: "another transporter cannot complete delivery",
			from: request.StatusInTransit,
			run: func(r *request.Request) error {
				other := actor.New(uuid.New(), actor.RoleTransporter)
				return r.MarkCompleted(other, later)
			},
			errIs: request.ErrWrongTransporter,
		},
		{
			name:  "completion is only legal in transit",
			from:  request.StatusCustomerAccepted,
			run:   func(r *request.Request) error { return r.MarkCompleted(transporter, later) },
			errIs: request.ErrInvalidTransition,
		},
		{
			name:  "declined is terminal",
			from:  request.StatusCustomerDeclined,
			run:   func(r *request.Request) error { return r.BeginReview(manager, "", later) },
			errIs: request.ErrInvalidTransition,
		},
		{
			name:  "completed is terminal",
			from:  request.StatusCompleted,
			run:   func(r *request.Request) error { return r.MarkCompleted(transporter, later) },
			errIs: request.ErrInvalidTransition,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := requestAt(t, tc.from)
			err := tc.run(r)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.from, r.Status(), "failed transition must not change status")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTo, r.Status())
			assert.True(t, r.UpdatedAt().After(baseTime))
		})
	}
}

func TestRequest_ReviseClearsQuotedPrice(t *testing.T) {
	r := requestAt(t, request.StatusQuoted)
	require.NotNil(t, r.QuotedPrice())

	require.NoError(t, r.Respond(customer, request.ResponseRevise, "too high", baseTime.Add(time.Hour)))

	assert.Equal(t, request.StatusManagerReview, r.Status())
	assert.Nil(t, r.QuotedPrice())
}

func TestRequest_AcceptOffer(t *testing.T) {
	t.Run("sets the agreed amount and accepts", func(t *testing.T) {
		r := requestAt(t, request.StatusQuoted)
		require.NoError(t, r.AcceptOffer(decimal.NewFromFloat(100000.005), baseTime.Add(time.Hour)))

		assert.Equal(t, request.StatusCustomerAccepted, r.Status())
		require.NotNil(t, r.QuotedPrice())
		assert.Equal(t, "100000.01", r.QuotedPrice().StringFixed(2))
	})

	t.Run("legal while still under review", func(t *testing.T) {
		r := requestAt(t, request.StatusManagerReview)
		require.NoError(t, r.AcceptOffer(decimal.NewFromInt(90000), baseTime.Add(time.Hour)))
		assert.Equal(t, request.StatusCustomerAccepted, r.Status())
	})

	t.Run("illegal once negotiation is over", func(t *testing.T) {
		r := requestAt(t, request.StatusInTransit)
		err := r.AcceptOffer(decimal.NewFromInt(90000), baseTime.Add(time.Hour))
		assert.ErrorIs(t, err, request.ErrInvalidTransition)
	})
}

func TestRequest_AcceptCounter(t *testing.T) {
	t.Run("counter amount replaces the quote", func(t *testing.T) {
		r := requestAt(t, request.StatusQuoted)
		require.NoError(t, r.AcceptCounter(customer, decimal.NewFromInt(105000), "deal", baseTime.Add(time.Hour)))

		assert.Equal(t, request.StatusCustomerAccepted, r.Status())
		assert.Equal(t, "105000.00", r.QuotedPrice().StringFixed(2))
	})

	t.Run("only the request's customer may accept", func(t *testing.T) {
		r := requestAt(t, request.StatusQuoted)
		other := actor.New(uuid.New(), actor.RoleCustomer)
		err := r.AcceptCounter(other, decimal.NewFromInt(105000), "", baseTime.Add(time.Hour))
		assert.ErrorIs(t, err, request.ErrNotRequestCustomer)
	})
}

func TestRequest_NotesAccumulate(t *testing.T) {
	r, err := request.NewRequest(customerID, productID, 1, nil, "addr", "first", baseTime)
	require.NoError(t, err)

	require.NoError(t, r.BeginReview(manager, "checking stock", baseTime.Add(time.Hour)))
	require.NoError(t, r.Quote(manager, decimal.NewFromInt(1000), "", baseTime.Add(2*time.Hour)))

	assert.Equal(t,
		"[customer 2026-03-01 10:00] first\n[manager 2026-03-01 11:00] checking stock",
		r.Notes(), "blank notes are not recorded")
}
