package queries

import (
	"context"
	"time"

	"quoteflow/internal/domain/actor"
	"quoteflow/internal/infra"
	"quoteflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type RequestView struct {
	ID               uuid.UUID        `json:"id"`
	CustomerID       uuid.UUID        `json:"customer_id"`
	ProductID        uuid.UUID        `json:"product_id"`
	ProductName      string           `json:"product_name"`
	Quantity         int              `json:"quantity"`
	Status           string           `json:"status"`
	QuotedPrice      *decimal.Decimal `json:"quoted_price,omitempty"`
	ExpectedDelivery *time.Time       `json:"expected_delivery,omitempty"`
	DeliveryAddress  string           `json:"delivery_address"`
	ManagerID        *uuid.UUID       `json:"manager_id,omitempty"`
	TransporterID    *uuid.UUID       `json:"transporter_id,omitempty"`
	Notes            string           `json:"notes"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type RequestListItem struct {
	ID          uuid.UUID        `json:"id"`
	CustomerID  uuid.UUID        `json:"customer_id"`
	ProductName string           `json:"product_name"`
	Quantity    int              `json:"quantity"`
	Status      string           `json:"status"`
	QuotedPrice *decimal.Decimal `json:"quoted_price,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type RequestFilter struct {
	Status     *string
	CustomerID *uuid.UUID
}

type RequestQueries interface {
	GetByID(ctx context.Context, a actor.Actor, id uuid.UUID) (*RequestView, error)
	List(ctx context.Context, a actor.Actor, filter RequestFilter) ([]*RequestListItem, error)
}

type RequestViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	FindAll(ctx context.Context, filter RequestFilter) ([]*RequestListItem, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, status *string) ([]*RequestListItem, error)
	FindByTransporterID(ctx context.Context, transporterID uuid.UUID, status *string) ([]*RequestListItem, error)
}

type requestQueriesImpl struct {
	repo RequestViewRepo
}

func NewRequestQueries(repo RequestViewRepo) RequestQueries {
	return &requestQueriesImpl{repo: repo}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, a actor.Actor, id uuid.UUID) (*RequestView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, err
	}
	if err := authorizeView(a, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *requestQueriesImpl) List(ctx context.Context, a actor.Actor, filter RequestFilter) ([]*RequestListItem, error) {
	switch a.Role {
	case actor.RoleManager:
		return q.repo.FindAll(ctx, filter)
	case actor.RoleCustomer:
		return q.repo.FindByCustomerID(ctx, a.ID, filter.Status)
	case actor.RoleTransporter:
		return q.repo.FindByTransporterID(ctx, a.ID, filter.Status)
	default:
		return nil, errs.ErrUnauthorized
	}
}

// Customers see their own requests; transporters the ones assigned to them;
// managers everything.
func authorizeView(a actor.Actor, view *RequestView) error {
	switch a.Role {
	case actor.RoleManager:
		return nil
	case actor.RoleCustomer:
		if view.CustomerID == a.ID {
			return nil
		}
	case actor.RoleTransporter:
		if view.TransporterID != nil && *view.TransporterID == a.ID {
			return nil
		}
	}
	return errs.ErrUnauthorized
}
