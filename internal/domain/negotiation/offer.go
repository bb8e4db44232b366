package negotiation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOfferType   = errors.New("invalid offer type")
	ErrNonPositiveAmount  = errors.New("offer amount must be positive")
	ErrNoItems            = errors.New("offer requires at least one item")
	ErrInvalidItem        = errors.New("offer item quantity and unit price must be positive")
	ErrItemTotalMismatch  = errors.New("item total does not match unit price times quantity")
	ErrItemsSumMismatch   = errors.New("item totals do not sum to the offer amount")
	ErrOfferNotPending    = errors.New("offer already resolved")
	ErrInvalidOfferStatus = errors.New("invalid offer status")
)

// roundingEpsilon absorbs client-side rounding when checking item sums.
var roundingEpsilon = decimal.NewFromFloat(0.01)

type OfferType string

const (
	TypeCustomerOffer OfferType = "customer_offer"
	TypeAdminCounter  OfferType = "admin_counter"
)

func NewOfferType(s string) (OfferType, error) {
	switch OfferType(s) {
	case TypeCustomerOffer, TypeAdminCounter:
		return OfferType(s), nil
	default:
		return "", ErrInvalidOfferType
	}
}

type OfferStatus string

const (
	StatusPending  OfferStatus = "pending"
	StatusAccepted OfferStatus = "accepted"
	StatusRejected OfferStatus = "rejected"
)

func NewOfferStatus(s string) (OfferStatus, error) {
	switch OfferStatus(s) {
	case StatusPending, StatusAccepted, StatusRejected:
		return OfferStatus(s), nil
	default:
		return "", ErrInvalidOfferStatus
	}
}

// Item is one negotiated line of an offer.
type Item struct {
	ProductID      uuid.UUID
	Quantity       int
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
	Specifications string
	Notes          string
}

// Offer is a single negotiation-round proposal. It is immutable once created
// except for its terminal status: a pending offer ends up accepted, or
// rejected (explicitly or by supersession).
type Offer struct {
	id          uuid.UUID
	requestID   uuid.UUID
	actorID     uuid.UUID
	offerType   OfferType
	totalAmount decimal.Decimal
	items       []Item
	status      OfferStatus
	notes       string
	createdAt   time.Time
}

func NewOffer(
	requestID, actorID uuid.UUID,
	offerType OfferType,
	totalAmount decimal.Decimal,
	items []Item,
	notes string,
	now time.Time,
) (*Offer, error) {
	if _, err := NewOfferType(string(offerType)); err != nil {
		return nil, err
	}
	if !totalAmount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	sum := decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 || !it.UnitPrice.IsPositive() {
			return nil, ErrInvalidItem
		}
		expected := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		if it.TotalPrice.Sub(expected).Abs().GreaterThan(roundingEpsilon) {
			return nil, ErrItemTotalMismatch
		}
		sum = sum.Add(it.TotalPrice)
	}
	if sum.Sub(totalAmount).Abs().GreaterThan(roundingEpsilon) {
		return nil, ErrItemsSumMismatch
	}

	return &Offer{
		id:          uuid.New(),
		requestID:   requestID,
		actorID:     actorID,
		offerType:   offerType,
		totalAmount: totalAmount.Round(2),
		items:       items,
		status:      StatusPending,
		notes:       notes,
		createdAt:   now,
	}, nil
}

func Reconstruct(
	id, requestID, actorID uuid.UUID,
	offerType OfferType,
	totalAmount decimal.Decimal,
	items []Item,
	status OfferStatus,
	notes string,
	createdAt time.Time,
) *Offer {
	return &Offer{
		id:          id,
		requestID:   requestID,
		actorID:     actorID,
		offerType:   offerType,
		totalAmount: totalAmount,
		items:       items,
		status:      status,
		notes:       notes,
		createdAt:   createdAt,
	}
}

func (o *Offer) Accept() error {
	if o.status != StatusPending {
		return ErrOfferNotPending
	}
	o.status = StatusAccepted
	return nil
}

func (o *Offer) Reject() error {
	if o.status != StatusPending {
		return ErrOfferNotPending
	}
	o.status = StatusRejected
	return nil
}

func (o *Offer) IsPending() bool {
	return o.status == StatusPending
}

func (o *Offer) ID() uuid.UUID                { return o.id }
func (o *Offer) RequestID() uuid.UUID         { return o.requestID }
func (o *Offer) ActorID() uuid.UUID           { return o.actorID }
func (o *Offer) Type() OfferType              { return o.offerType }
func (o *Offer) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *Offer) Items() []Item                { return o.items }
func (o *Offer) Status() OfferStatus          { return o.status }
func (o *Offer) Notes() string                { return o.notes }
func (o *Offer) CreatedAt() time.Time         { return o.createdAt }
