package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quoteflow/internal/domain/actor"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
	ErrEmptyAddress        = errors.New("delivery address is required")
	ErrNonPositiveQuote    = errors.New("quoted price must be positive")
	ErrMissingTransporter  = errors.New("transporter id is required")
	ErrInvalidTransition   = errors.New("transition not allowed from current status")
	ErrActorNotPermitted   = errors.New("actor is not permitted to perform this transition")
	ErrNotRequestCustomer  = errors.New("only the request's customer may respond")
	ErrWrongTransporter    = errors.New("only the assigned transporter may complete the delivery")
	ErrInvalidResponse     = errors.New("response must be accepted, declined or revise")
)

// Response is the customer's answer to a quote.
type Response string

const (
	ResponseAccepted Response = "accepted"
	ResponseDeclined Response = "declined"
	ResponseRevise   Response = "revise"
)

func NewResponse(s string) (Response, error) {
	switch Response(s) {
	case ResponseAccepted, ResponseDeclined, ResponseRevise:
		return Response(s), nil
	default:
		return "", ErrInvalidResponse
	}
}

// Request is the unit of work: a customer's product order moving through
// review, quoting, negotiation and fulfillment. All mutation goes through
// transition methods; each one validates the actor's role and the exact
// current status before writing anything.
type Request struct {
	id               uuid.UUID
	customerID       uuid.UUID
	productID        uuid.UUID
	quantity         int
	status           Status
	quotedPrice      *decimal.Decimal
	expectedDelivery *time.Time
	deliveryAddress  string
	managerID        *uuid.UUID
	transporterID    *uuid.UUID
	notes            string
	createdAt        time.Time
	updatedAt        time.Time
}

func NewRequest(
	customerID, productID uuid.UUID,
	quantity int,
	expectedDelivery *time.Time,
	deliveryAddress string,
	note string,
	now time.Time,
) (*Request, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if strings.TrimSpace(deliveryAddress) == "" {
		return nil, ErrEmptyAddress
	}

	r := &Request{
		id:               uuid.New(),
		customerID:       customerID,
		productID:        productID,
		quantity:         quantity,
		status:           StatusSubmitted,
		expectedDelivery: expectedDelivery,
		deliveryAddress:  strings.TrimSpace(deliveryAddress),
		createdAt:        now,
		updatedAt:        now,
	}
	r.appendNote(actor.RoleCustomer, note, now)
	return r, nil
}

func Reconstruct(
	id, customerID, productID uuid.UUID,
	quantity int,
	status Status,
	quotedPrice *decimal.Decimal,
	expectedDelivery *time.Time,
	deliveryAddress string,
	managerID, transporterID *uuid.UUID,
	notes string,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:               id,
		customerID:       customerID,
		productID:        productID,
		quantity:         quantity,
		status:           status,
		quotedPrice:      quotedPrice,
		expectedDelivery: expectedDelivery,
		deliveryAddress:  deliveryAddress,
		managerID:        managerID,
		transporterID:    transporterID,
		notes:            notes,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// BeginReview moves submitted -> manager_review and records the reviewing
// manager.
func (r *Request) BeginReview(a actor.Actor, note string, now time.Time) error {
	if !a.Is(actor.RoleManager) {
		return ErrActorNotPermitted
	}
	if r.status != StatusSubmitted {
		return transitionError(r.status, StatusSubmitted)
	}
	r.status = StatusManagerReview
	managerID := a.ID
	r.managerID = &managerID
	r.appendNote(a.Role, note, now)
	r.updatedAt = now
	return nil
}

// Quote moves manager_review -> quoted and sets the authoritative price.
func (r *Request) Quote(a actor.Actor, price decimal.Decimal, note string, now time.Time) error {
	if !a.Is(actor.RoleManager) {
		return ErrActorNotPermitted
	}
	if r.status != StatusManagerReview {
		return transitionError(r.status, StatusManagerReview)
	}
	if !price.IsPositive() {
		return ErrNonPositiveQuote
	}
	r.status = StatusQuoted
	rounded := price.Round(2)
	r.quotedPrice = &rounded
	r.appendNote(a.Role, note, now)
	r.updatedAt = now
	return nil
}

// Respond applies the customer's answer to a quote. Revising clears the
// quoted price and hands the request back to the manager.
func (r *Request) Respond(a actor.Actor, resp Response, note string, now time.Time) error {
	if !a.Is(actor.RoleCustomer) {
		return ErrActorNotPermitted
	}
	if a.ID != r.customerID {
		return ErrNotRequestCustomer
	}
	if r.status != StatusQuoted {
		return transitionError(r.status, StatusQuoted)
	}
	switch resp {
	case ResponseAccepted:
		r.status = StatusCustomerAccepted
	case ResponseDeclined:
		r.status = StatusCustomerDeclined
	case ResponseRevise:
		r.status = StatusManagerReview
		r.quotedPrice = nil // pending re-quote
	default:
		return ErrInvalidResponse
	}
	r.appendNote(a.Role, note, now)
	r.updatedAt = now
	return nil
}

// AcceptOffer applies an accepted ledger offer: the offer amount becomes the
// quoted price and the request advances to customer_accepted in the same
// step. Legal while the request is still negotiable.
func (r *Request) AcceptOffer(amount decimal.Decimal, now time.Time) error {
	if !r.status.IsNegotiable() {
		return transitionError(r.status, StatusManagerReview, StatusQuoted)
	}
	if !amount.IsPositive() {
		return ErrNonPositiveQuote
	}
	rounded := amount.Round(2)
	r.quotedPrice = &rounded
	r.status = StatusCustomerAccepted
	r.updatedAt = now
	return nil
}

// AcceptCounter is the customer-side acceptance of a pending admin counter:
// the counter amount replaces the quoted price before the accept response is
// applied. Only legal from quoted.
func (r *Request) AcceptCounter(a actor.Actor, amount decimal.Decimal, note string, now time.Time) error {
	if !a.Is(actor.RoleCustomer) {
		return ErrActorNotPermitted
	}
	if a.ID != r.customerID {
		return ErrNotRequestCustomer
	}
	if r.status != StatusQuoted {
		return transitionError(r.status, StatusQuoted)
	}
	if !amount.IsPositive() {
		return ErrNonPositiveQuote
	}
	rounded := amount.Round(2)
	r.quotedPrice = &rounded
	r.status = StatusCustomerAccepted
	r.appendNote(a.Role, note, now)
	r.updatedAt = now
	return nil
}

// AssignTransporter moves customer_accepted -> in_transit.
func (r *Request) AssignTransporter(a actor.Actor, transporterID uuid.UUID, note string, now time.Time) error {
	if !a.Is(actor.RoleManager) {
		return ErrActorNotPermitted
	}
	if r.status != StatusCustomerAccepted {
		return transitionError(r.status, StatusCustomerAccepted)
	}
	if transporterID == uuid.Nil {
		return ErrMissingTransporter
	}
	r.status = StatusInTransit
	r.transporterID = &transporterID
	r.appendNote(a.Role, note, now)
	r.updatedAt = now
	return nil
}

// MarkCompleted moves in_transit -> completed. Only the assigned transporter
// may complete a delivery.
func (r *Request) MarkCompleted(a actor.Actor, now time.Time) error {
	if !a.Is(actor.RoleTransporter) {
		return ErrActorNotPermitted
	}
	if r.status != StatusInTransit {
		return transitionError(r.status, StatusInTransit)
	}
	if r.transporterID == nil || *r.transporterID != a.ID {
		return ErrWrongTransporter
	}
	r.status = StatusCompleted
	r.updatedAt = now
	return nil
}

func (r *Request) appendNote(role actor.Role, note string, now time.Time) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	line := fmt.Sprintf("[%s %s] %s", role, now.Format("2006-01-02 15:04"), note)
	if r.notes == "" {
		r.notes = line
		return
	}
	r.notes = r.notes + "\n" + line
}

func transitionError(got Status, want ...Status) error {
	expected := make([]string, len(want))
	for i, s := range want {
		expected[i] = s.String()
	}
	return fmt.Errorf("%w: status is %q, expected %s",
		ErrInvalidTransition, got, strings.Join(expected, " or "))
}

func (r *Request) ID() uuid.UUID                  { return r.id }
func (r *Request) CustomerID() uuid.UUID          { return r.customerID }
func (r *Request) ProductID() uuid.UUID           { return r.productID }
func (r *Request) Quantity() int                  { return r.quantity }
func (r *Request) Status() Status                 { return r.status }
func (r *Request) QuotedPrice() *decimal.Decimal  { return r.quotedPrice }
func (r *Request) ExpectedDelivery() *time.Time   { return r.expectedDelivery }
func (r *Request) DeliveryAddress() string        { return r.deliveryAddress }
func (r *Request) ManagerID() *uuid.UUID          { return r.managerID }
func (r *Request) TransporterID() *uuid.UUID      { return r.transporterID }
func (r *Request) Notes() string                  { return r.notes }
func (r *Request) CreatedAt() time.Time           { return r.createdAt }
func (r *Request) UpdatedAt() time.Time           { return r.updatedAt }
