//go:build unit

package commands_test

import (
	"context"
	"time"

	"quoteflow/internal/domain/negotiation"
	"quoteflow/internal/domain/request"
	"quoteflow/internal/infra"
	"quoteflow/internal/pkg/clock"
	"quoteflow/internal/usecase/commands"
	"quoteflow/internal/usecase/queries"
	"quoteflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fixture wires the production commands and queries over the in-memory store.
type fixture struct {
	store           *memStore
	clk             *clock.MockClock
	requestCommands commands.RequestCommands
	offerCommands   commands.NegotiationCommands
	requestQueries  queries.RequestQueries
}

func newFixture() *fixture {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	store := newMemStore(clk)
	uow := &memUoW{s: store}
	views := memViews{s: store}
	requestQueries := queries.NewRequestQueries(views)
	offerQueries := queries.NewOfferQueries(views, views)
	return &fixture{
		store:           store,
		clk:             clk,
		requestCommands: commands.NewRequestCommands(uow, requestQueries, clk),
		offerCommands:   commands.NewNegotiationCommands(uow, offerQueries, requestQueries, clk),
		requestQueries:  requestQueries,
	}
}

func (f *fixture) seedProduct(name string, basePrice int64) uuid.UUID {
	id := uuid.New()
	f.store.products[id] = shared.ProductSnapshot{
		ID:        id,
		Name:      name,
		BasePrice: decimal.NewFromInt(basePrice),
	}
	return id
}

// memStore is an in-memory stand-in for the postgres-backed unit of work. It
// satisfies both the command-side repositories and the read-side view repos,
// so commands run against the same production query objects they use in
// production. Rollback is not simulated: tests assert either committed state
// or errors raised before any mutation.
type memStore struct {
	clk      *clock.MockClock
	products map[uuid.UUID]shared.ProductSnapshot
	requests map[uuid.UUID]*request.Request
	offers   []*negotiation.Offer
	idem     map[string]*shared.IdempotencyRecord
}

func newMemStore(clk *clock.MockClock) *memStore {
	return &memStore{
		clk:      clk,
		products: map[uuid.UUID]shared.ProductSnapshot{},
		requests: map[uuid.UUID]*request.Request{},
		idem:     map[string]*shared.IdempotencyRecord{},
	}
}

func (s *memStore) offerByID(id uuid.UUID) (*negotiation.Offer, error) {
	return memOffers{s: s}.FindByIDForUpdate(context.Background(), id)
}

func idemKey(key, userID uuid.UUID) string {
	return key.String() + "/" + userID.String()
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

// --- shared.UnitOfWork ---

type memUoW struct{ s *memStore }

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, memTx{u.s})
}

func (u *memUoW) CommandReads() shared.CommandReads { return memReads{u.s} }

type memTx struct{ s *memStore }

func (t memTx) Requests() shared.RequestRepository { return memRequests{t.s} }

func (t memTx) Offers() shared.OfferRepository { return memOffers{t.s} }

func (t memTx) Idempotency() shared.IdempotencyRepository { return memIdempotency{t.s} }

func (t memTx) Reads() shared.CommandReads { return memReads{t.s} }

type memReads struct{ s *memStore }

func (r memReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, notFound("product not found")
	}
	return &p, nil
}

func (r memReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.s.idem[idemKey(key, userID)]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	cp := *rec
	return &cp, nil
}

type memRequests struct{ s *memStore }

func (r memRequests) Create(_ context.Context, req *request.Request) error {
	r.s.requests[req.ID()] = req
	return nil
}

func (r memRequests) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*request.Request, error) {
	req, ok := r.s.requests[id]
	if !ok {
		return nil, notFound("request not found")
	}
	return req, nil
}

func (r memRequests) Update(_ context.Context, req *request.Request) error {
	if _, ok := r.s.requests[req.ID()]; !ok {
		return notFound("request not found")
	}
	r.s.requests[req.ID()] = req
	return nil
}

type memOffers struct{ s *memStore }

func (r memOffers) Create(_ context.Context, offer *negotiation.Offer) error {
	r.s.offers = append(r.s.offers, offer)
	return nil
}

func (r memOffers) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*negotiation.Offer, error) {
	for _, o := range r.s.offers {
		if o.ID() == id {
			return o, nil
		}
	}
	return nil, notFound("offer not found")
}

func (r memOffers) FindPendingByRequestForUpdate(_ context.Context, requestID uuid.UUID) (*negotiation.Offer, error) {
	for _, o := range r.s.offers {
		if o.RequestID() == requestID && o.IsPending() {
			return o, nil
		}
	}
	return nil, notFound("no pending offer")
}

func (r memOffers) UpdateStatus(_ context.Context, id uuid.UUID, _ negotiation.OfferStatus) error {
	// entities are mutated in place; only existence matters here
	for _, o := range r.s.offers {
		if o.ID() == id {
			return nil
		}
	}
	return notFound("offer not found")
}

type memIdempotency struct{ s *memStore }

func (r memIdempotency) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	k := idemKey(key, userID)
	if _, ok := r.s.idem[k]; ok {
		return infra.WrapRepoErr("idempotency key exists", nil, infra.KindDuplicateKey)
	}
	r.s.idem[k] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		Status:      "processing",
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (r memIdempotency) UpdateStatusCompleted(_ context.Context, key, userID, resultRequestID uuid.UUID) error {
	rec, ok := r.s.idem[idemKey(key, userID)]
	if !ok {
		return notFound("idempotency key not found")
	}
	rec.Status = "completed"
	id := resultRequestID
	rec.ResultRequestID = &id
	return nil
}

func (r memIdempotency) ClaimExpiredKey(_ context.Context, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	rec, ok := r.s.idem[idemKey(key, userID)]
	if !ok || rec.Status != "processing" || !rec.ExpiresAt.Before(r.s.clk.Now()) {
		return 0, nil
	}
	rec.RequestHash = requestHash
	rec.ExpiresAt = expiresAt
	return 1, nil
}

// --- queries.RequestViewRepo / queries.OfferViewRepo ---

type memViews struct{ s *memStore }

func (v memViews) viewOf(r *request.Request) *queries.RequestView {
	return &queries.RequestView{
		ID:               r.ID(),
		CustomerID:       r.CustomerID(),
		ProductID:        r.ProductID(),
		ProductName:      v.s.products[r.ProductID()].Name,
		Quantity:         r.Quantity(),
		Status:           r.Status().String(),
		QuotedPrice:      r.QuotedPrice(),
		ExpectedDelivery: r.ExpectedDelivery(),
		DeliveryAddress:  r.DeliveryAddress(),
		ManagerID:        r.ManagerID(),
		TransporterID:    r.TransporterID(),
		Notes:            r.Notes(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
}

func (v memViews) FindByID(_ context.Context, id uuid.UUID) (*queries.RequestView, error) {
	r, ok := v.s.requests[id]
	if !ok {
		return nil, notFound("request not found")
	}
	return v.viewOf(r), nil
}

func (v memViews) listItemOf(r *request.Request) *queries.RequestListItem {
	return &queries.RequestListItem{
		ID:          r.ID(),
		CustomerID:  r.CustomerID(),
		ProductName: v.s.products[r.ProductID()].Name,
		Quantity:    r.Quantity(),
		Status:      r.Status().String(),
		QuotedPrice: r.QuotedPrice(),
		CreatedAt:   r.CreatedAt(),
	}
}

func (v memViews) FindAll(_ context.Context, filter queries.RequestFilter) ([]*queries.RequestListItem, error) {
	items := []*queries.RequestListItem{}
	for _, r := range v.s.requests {
		if filter.Status != nil && r.Status().String() != *filter.Status {
			continue
		}
		if filter.CustomerID != nil && r.CustomerID() != *filter.CustomerID {
			continue
		}
		items = append(items, v.listItemOf(r))
	}
	return items, nil
}

func (v memViews) FindByCustomerID(_ context.Context, customerID uuid.UUID, status *string) ([]*queries.RequestListItem, error) {
	items := []*queries.RequestListItem{}
	for _, r := range v.s.requests {
		if r.CustomerID() != customerID {
			continue
		}
		if status != nil && r.Status().String() != *status {
			continue
		}
		items = append(items, v.listItemOf(r))
	}
	return items, nil
}

func (v memViews) FindByTransporterID(_ context.Context, transporterID uuid.UUID, status *string) ([]*queries.RequestListItem, error) {
	items := []*queries.RequestListItem{}
	for _, r := range v.s.requests {
		if r.TransporterID() == nil || *r.TransporterID() != transporterID {
			continue
		}
		if status != nil && r.Status().String() != *status {
			continue
		}
		items = append(items, v.listItemOf(r))
	}
	return items, nil
}

func (v memViews) FindByRequestID(_ context.Context, requestID uuid.UUID) ([]*queries.OfferView, error) {
	views := []*queries.OfferView{}
	for _, o := range v.s.offers {
		if o.RequestID() != requestID {
			continue
		}
		items := make([]queries.OfferItemView, 0, len(o.Items()))
		for _, it := range o.Items() {
			items = append(items, queries.OfferItemView{
				ProductID:      it.ProductID,
				ProductName:    v.s.products[it.ProductID].Name,
				Quantity:       it.Quantity,
				UnitPrice:      it.UnitPrice,
				TotalPrice:     it.TotalPrice,
				Specifications: it.Specifications,
				Notes:          it.Notes,
			})
		}
		views = append(views, &queries.OfferView{
			ID:          o.ID(),
			RequestID:   o.RequestID(),
			ActorID:     o.ActorID(),
			OfferType:   string(o.Type()),
			TotalAmount: o.TotalAmount(),
			Status:      string(o.Status()),
			Notes:       o.Notes(),
			Items:       items,
			CreatedAt:   o.CreatedAt(),
		})
	}
	return views, nil
}
