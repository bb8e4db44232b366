package repository

import (
	"context"

	"quoteflow/internal/domain/negotiation"
	"quoteflow/internal/infra"
	"quoteflow/internal/infra/db"
	"quoteflow/internal/pkg/pgconv"
	"quoteflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OfferRepository struct {
	dbtx db.DBTX
}

func NewOfferRepository(dbtx db.DBTX) shared.OfferRepository {
	return &OfferRepository{dbtx: dbtx}
}

func (r *OfferRepository) Create(ctx context.Context, offer *negotiation.Offer) error {
	const offerQuery = `
		INSERT INTO offers (id, request_id, actor_id, offer_type, total_amount, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.dbtx.Exec(ctx, offerQuery,
		pgconv.UUIDToPgtype(offer.ID()),
		pgconv.UUIDToPgtype(offer.RequestID()),
		pgconv.UUIDToPgtype(offer.ActorID()),
		string(offer.Type()),
		pgconv.DecimalToNumeric(offer.TotalAmount()),
		string(offer.Status()),
		offer.Notes(),
		pgconv.TimeToPgtype(offer.CreatedAt()),
	)
	if err != nil {
		return convertPgError("failed to create offer", err)
	}

	const itemQuery = `
		INSERT INTO offer_items (offer_id, position, product_id, quantity, unit_price, total_price, specifications, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, it := range offer.Items() {
		_, err := r.dbtx.Exec(ctx, itemQuery,
			pgconv.UUIDToPgtype(offer.ID()),
			int32(i),
			pgconv.UUIDToPgtype(it.ProductID),
			int32(it.Quantity),
			pgconv.DecimalToNumeric(it.UnitPrice),
			pgconv.DecimalToNumeric(it.TotalPrice),
			it.Specifications,
			it.Notes,
		)
		if err != nil {
			return convertPgError("failed to create offer item", err)
		}
	}
	return nil
}

func (r *OfferRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*negotiation.Offer, error) {
	const query = `
		SELECT id, request_id, actor_id, offer_type, total_amount, status, notes, created_at
		FROM offers
		WHERE id = $1
		FOR UPDATE`

	return r.scanOffer(ctx, r.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)), "offer not found")
}

func (r *OfferRepository) FindPendingByRequestForUpdate(ctx context.Context, requestID uuid.UUID) (*negotiation.Offer, error) {
	const query = `
		SELECT id, request_id, actor_id, offer_type, total_amount, status, notes, created_at
		FROM offers
		WHERE request_id = $1 AND status = 'pending'
		FOR UPDATE`

	return r.scanOffer(ctx, r.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(requestID)), "no pending offer for request")
}

func (r *OfferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status negotiation.OfferStatus) error {
	const query = `UPDATE offers SET status = $2 WHERE id = $1`

	tag, err := r.dbtx.Exec(ctx, query, pgconv.UUIDToPgtype(id), string(status))
	if err != nil {
		return convertPgError("failed to update offer status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

type pgRow interface {
	Scan(dest ...any) error
}

func (r *OfferRepository) scanOffer(ctx context.Context, row pgRow, notFoundMsg string) (*negotiation.Offer, error) {
	var (
		id, requestID, actorID pgtype.UUID
		offerType, status      string
		totalAmount            pgtype.Numeric
		notes                  string
		createdAt              pgtype.Timestamptz
	)
	err := row.Scan(&id, &requestID, &actorID, &offerType, &totalAmount, &status, &notes, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(notFoundMsg, err, infra.KindNotFound)
		}
		return nil, convertPgError("failed to find offer", err)
	}

	items, err := r.loadItems(ctx, uuid.UUID(id.Bytes))
	if err != nil {
		return nil, err
	}

	typ, err := negotiation.NewOfferType(offerType)
	if err != nil {
		return nil, infra.WrapRepoErr("stored offer type is invalid", err)
	}
	st, err := negotiation.NewOfferStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored offer status is invalid", err)
	}

	return negotiation.Reconstruct(
		uuid.UUID(id.Bytes),
		uuid.UUID(requestID.Bytes),
		uuid.UUID(actorID.Bytes),
		typ,
		pgconv.DecimalFromNumeric(totalAmount),
		items,
		st,
		notes,
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

func (r *OfferRepository) loadItems(ctx context.Context, offerID uuid.UUID) ([]negotiation.Item, error) {
	const query = `
		SELECT product_id, quantity, unit_price, total_price, specifications, notes
		FROM offer_items
		WHERE offer_id = $1
		ORDER BY position`

	rows, err := r.dbtx.Query(ctx, query, pgconv.UUIDToPgtype(offerID))
	if err != nil {
		return nil, convertPgError("failed to load offer items", err)
	}
	defer rows.Close()

	var items []negotiation.Item
	for rows.Next() {
		var (
			productID             pgtype.UUID
			quantity              int32
			unitPrice, totalPrice pgtype.Numeric
			specifications, notes string
		)
		if err := rows.Scan(&productID, &quantity, &unitPrice, &totalPrice, &specifications, &notes); err != nil {
			return nil, convertPgError("failed to scan offer item", err)
		}
		items = append(items, negotiation.Item{
			ProductID:      uuid.UUID(productID.Bytes),
			Quantity:       int(quantity),
			UnitPrice:      pgconv.DecimalFromNumeric(unitPrice),
			TotalPrice:     pgconv.DecimalFromNumeric(totalPrice),
			Specifications: specifications,
			Notes:          notes,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, convertPgError("failed to iterate offer items", err)
	}
	return items, nil
}
