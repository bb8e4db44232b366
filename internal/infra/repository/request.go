package repository

import (
	"context"

	"quoteflow/internal/domain/request"
	"quoteflow/internal/infra"
	"quoteflow/internal/infra/db"
	"quoteflow/internal/pkg/pgconv"
	"quoteflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestRepository struct {
	dbtx db.DBTX
}

func NewRequestRepository(dbtx db.DBTX) shared.RequestRepository {
	return &RequestRepository{dbtx: dbtx}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	const query = `
		INSERT INTO requests (
			id, customer_id, product_id, quantity, status, quoted_price,
			expected_delivery, delivery_address, manager_id, transporter_id,
			notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(req.ID()),
		pgconv.UUIDToPgtype(req.CustomerID()),
		pgconv.UUIDToPgtype(req.ProductID()),
		int32(req.Quantity()),
		string(req.Status()),
		pgconv.DecimalPtrToNumeric(req.QuotedPrice()),
		pgconv.TimePtrToPgtype(req.ExpectedDelivery()),
		req.DeliveryAddress(),
		pgconv.UUIDPtrToPgtype(req.ManagerID()),
		pgconv.UUIDPtrToPgtype(req.TransporterID()),
		req.Notes(),
		pgconv.TimeToPgtype(req.CreatedAt()),
		pgconv.TimeToPgtype(req.UpdatedAt()),
	)
	if err != nil {
		return convertPgError("failed to create request", err)
	}
	return nil
}

func (r *RequestRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	const query = `
		SELECT id, customer_id, product_id, quantity, status, quoted_price,
		       expected_delivery, delivery_address, manager_id, transporter_id,
		       notes, created_at, updated_at
		FROM requests
		WHERE id = $1
		FOR UPDATE`

	row := r.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id))

	var (
		rowID, customerID, productID pgtype.UUID
		quantity                     int32
		status                       string
		quotedPrice                  pgtype.Numeric
		expectedDelivery             pgtype.Timestamptz
		deliveryAddress              string
		managerID, transporterID     pgtype.UUID
		notes                        string
		createdAt, updatedAt         pgtype.Timestamptz
	)
	err := row.Scan(
		&rowID, &customerID, &productID, &quantity, &status, &quotedPrice,
		&expectedDelivery, &deliveryAddress, &managerID, &transporterID,
		&notes, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, convertPgError("failed to find request", err)
	}

	st, err := request.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored request status is invalid", err)
	}

	return request.Reconstruct(
		uuid.UUID(rowID.Bytes),
		uuid.UUID(customerID.Bytes),
		uuid.UUID(productID.Bytes),
		int(quantity),
		st,
		pgconv.DecimalPtrFromNumeric(quotedPrice),
		pgconv.TimePtrFromPgtype(expectedDelivery),
		deliveryAddress,
		pgconv.UUIDPtrFromPgtype(managerID),
		pgconv.UUIDPtrFromPgtype(transporterID),
		notes,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *RequestRepository) Update(ctx context.Context, req *request.Request) error {
	const query = `
		UPDATE requests
		SET status = $2, quoted_price = $3, manager_id = $4,
		    transporter_id = $5, notes = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(req.ID()),
		string(req.Status()),
		pgconv.DecimalPtrToNumeric(req.QuotedPrice()),
		pgconv.UUIDPtrToPgtype(req.ManagerID()),
		pgconv.UUIDPtrToPgtype(req.TransporterID()),
		req.Notes(),
		pgconv.TimeToPgtype(req.UpdatedAt()),
	)
	if err != nil {
		return convertPgError("failed to update request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("request not found", nil, infra.KindNotFound)
	}
	return nil
}
