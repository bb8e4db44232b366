package readstore

import (
	"context"

	"quoteflow/internal/infra"
	"quoteflow/internal/infra/db"
	"quoteflow/internal/pkg/pgconv"
	"quoteflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestReadStore struct {
	db db.DBTX
}

func NewRequestReadStore(dbtx db.DBTX) *RequestReadStore {
	return &RequestReadStore{db: dbtx}
}

const requestViewColumns = `
	r.id, r.customer_id, r.product_id, p.name AS product_name, r.quantity,
	r.status, r.quoted_price, r.expected_delivery, r.delivery_address,
	r.manager_id, r.transporter_id, r.notes, r.created_at, r.updated_at`

func (s *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	query := `
		SELECT` + requestViewColumns + `
		FROM requests r
		JOIN products p ON p.id = r.product_id
		WHERE r.id = $1`

	view, err := scanRequestView(s.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request by ID", err)
	}
	return view, nil
}

func (s *RequestReadStore) FindAll(ctx context.Context, filter queries.RequestFilter) ([]*queries.RequestListItem, error) {
	query := `
		SELECT r.id, r.customer_id, p.name, r.quantity, r.status, r.quoted_price, r.created_at
		FROM requests r
		JOIN products p ON p.id = r.product_id
		WHERE ($1::text IS NULL OR r.status = $1)
		  AND ($2::uuid IS NULL OR r.customer_id = $2)
		ORDER BY r.created_at DESC`

	rows, err := s.db.Query(ctx, query,
		pgconv.StringPtrToPgtype(filter.Status),
		pgconv.UUIDPtrToPgtype(filter.CustomerID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests", err)
	}
	return collectListItems(rows)
}

func (s *RequestReadStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID, status *string) ([]*queries.RequestListItem, error) {
	query := `
		SELECT r.id, r.customer_id, p.name, r.quantity, r.status, r.quoted_price, r.created_at
		FROM requests r
		JOIN products p ON p.id = r.product_id
		WHERE r.customer_id = $1
		  AND ($2::text IS NULL OR r.status = $2)
		ORDER BY r.created_at DESC`

	rows, err := s.db.Query(ctx, query,
		pgconv.UUIDToPgtype(customerID),
		pgconv.StringPtrToPgtype(status),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests by customer", err)
	}
	return collectListItems(rows)
}

func (s *RequestReadStore) FindByTransporterID(ctx context.Context, transporterID uuid.UUID, status *string) ([]*queries.RequestListItem, error) {
	query := `
		SELECT r.id, r.customer_id, p.name, r.quantity, r.status, r.quoted_price, r.created_at
		FROM requests r
		JOIN products p ON p.id = r.product_id
		WHERE r.transporter_id = $1
		  AND ($2::text IS NULL OR r.status = $2)
		ORDER BY r.created_at DESC`

	rows, err := s.db.Query(ctx, query,
		pgconv.UUIDToPgtype(transporterID),
		pgconv.StringPtrToPgtype(status),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests by transporter", err)
	}
	return collectListItems(rows)
}

func scanRequestView(row pgx.Row) (*queries.RequestView, error) {
	var (
		id, customerID, productID pgtype.UUID
		productName               string
		quantity                  int32
		status                    string
		quotedPrice               pgtype.Numeric
		expectedDelivery          pgtype.Timestamptz
		deliveryAddress           string
		managerID, transporterID  pgtype.UUID
		notes                     string
		createdAt, updatedAt      pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &customerID, &productID, &productName, &quantity,
		&status, &quotedPrice, &expectedDelivery, &deliveryAddress,
		&managerID, &transporterID, &notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &queries.RequestView{
		ID:               uuid.UUID(id.Bytes),
		CustomerID:       uuid.UUID(customerID.Bytes),
		ProductID:        uuid.UUID(productID.Bytes),
		ProductName:      productName,
		Quantity:         int(quantity),
		Status:           status,
		QuotedPrice:      pgconv.DecimalPtrFromNumeric(quotedPrice),
		ExpectedDelivery: pgconv.TimePtrFromPgtype(expectedDelivery),
		DeliveryAddress:  deliveryAddress,
		ManagerID:        pgconv.UUIDPtrFromPgtype(managerID),
		TransporterID:    pgconv.UUIDPtrFromPgtype(transporterID),
		Notes:            notes,
		CreatedAt:        pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:        pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func collectListItems(rows pgx.Rows) ([]*queries.RequestListItem, error) {
	defer rows.Close()

	var result []*queries.RequestListItem
	for rows.Next() {
		var (
			id, customerID pgtype.UUID
			productName    string
			quantity       int32
			status         string
			quotedPrice    pgtype.Numeric
			createdAt      pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &customerID, &productName, &quantity, &status, &quotedPrice, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request row", err)
		}
		result = append(result, &queries.RequestListItem{
			ID:          uuid.UUID(id.Bytes),
			CustomerID:  uuid.UUID(customerID.Bytes),
			ProductName: productName,
			Quantity:    int(quantity),
			Status:      status,
			QuotedPrice: pgconv.DecimalPtrFromNumeric(quotedPrice),
			CreatedAt:   pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request rows", err)
	}
	return result, nil
}
