package readstore

import (
	"context"

	"quoteflow/internal/infra"
	"quoteflow/internal/infra/db"
	"quoteflow/internal/pkg/pgconv"
	"quoteflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(dbtx db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: dbtx}
}

func (s *OfferReadStore) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*queries.OfferView, error) {
	const offerQuery = `
		SELECT id, request_id, actor_id, offer_type, total_amount, status, notes, created_at
		FROM offers
		WHERE request_id = $1
		ORDER BY seq ASC`

	rows, err := s.db.Query(ctx, offerQuery, pgconv.UUIDToPgtype(requestID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offers by request", err)
	}
	defer rows.Close()

	var (
		views []*queries.OfferView
		ids   []pgtype.UUID
	)
	for rows.Next() {
		var (
			id, reqID, actorID pgtype.UUID
			offerType, status  string
			totalAmount        pgtype.Numeric
			notes              string
			createdAt          pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &reqID, &actorID, &offerType, &totalAmount, &status, &notes, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer row", err)
		}
		views = append(views, &queries.OfferView{
			ID:          uuid.UUID(id.Bytes),
			RequestID:   uuid.UUID(reqID.Bytes),
			ActorID:     uuid.UUID(actorID.Bytes),
			OfferType:   offerType,
			TotalAmount: pgconv.DecimalFromNumeric(totalAmount),
			Status:      status,
			Notes:       notes,
			CreatedAt:   pgconv.TimeFromPgtype(createdAt),
		})
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offer rows", err)
	}
	if len(views) == 0 {
		return []*queries.OfferView{}, nil
	}

	itemsByOffer, err := s.loadItems(ctx, requestID)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		if items, ok := itemsByOffer[v.ID]; ok {
			v.Items = items
		} else {
			v.Items = []queries.OfferItemView{}
		}
	}
	return views, nil
}

func (s *OfferReadStore) loadItems(ctx context.Context, requestID uuid.UUID) (map[uuid.UUID][]queries.OfferItemView, error) {
	const itemQuery = `
		SELECT i.offer_id, i.product_id, p.name, i.quantity, i.unit_price, i.total_price,
		       i.specifications, i.notes
		FROM offer_items i
		JOIN offers o ON o.id = i.offer_id
		JOIN products p ON p.id = i.product_id
		WHERE o.request_id = $1
		ORDER BY i.offer_id, i.position`

	rows, err := s.db.Query(ctx, itemQuery, pgconv.UUIDToPgtype(requestID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load offer items", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]queries.OfferItemView)
	for rows.Next() {
		var (
			offerID, productID    pgtype.UUID
			productName           string
			quantity              int32
			unitPrice, totalPrice pgtype.Numeric
			specifications, notes string
		)
		if err := rows.Scan(&offerID, &productID, &productName, &quantity, &unitPrice, &totalPrice, &specifications, &notes); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer item row", err)
		}
		oid := uuid.UUID(offerID.Bytes)
		result[oid] = append(result[oid], queries.OfferItemView{
			ProductID:      uuid.UUID(productID.Bytes),
			ProductName:    productName,
			Quantity:       int(quantity),
			UnitPrice:      pgconv.DecimalFromNumeric(unitPrice),
			TotalPrice:     pgconv.DecimalFromNumeric(totalPrice),
			Specifications: specifications,
			Notes:          notes,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offer item rows", err)
	}
	return result, nil
}
