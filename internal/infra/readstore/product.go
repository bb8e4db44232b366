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

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (s *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	const query = `
		SELECT id, name, base_price, customization_fee, installation_available, created_at
		FROM products
		WHERE id = $1`

	var (
		rowID                       pgtype.UUID
		name                        string
		basePrice, customizationFee pgtype.Numeric
		installationAvailable       bool
		createdAt                   pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&rowID, &name, &basePrice, &customizationFee, &installationAvailable, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}

	return &queries.ProductView{
		ID:                    uuid.UUID(rowID.Bytes),
		Name:                  name,
		BasePrice:             pgconv.DecimalFromNumeric(basePrice),
		CustomizationFee:      pgconv.DecimalFromNumeric(customizationFee),
		InstallationAvailable: installationAvailable,
		CreatedAt:             pgconv.TimeFromPgtype(createdAt),
	}, nil
}

func (s *ProductReadStore) FindAll(ctx context.Context) ([]*queries.ProductView, error) {
	const query = `
		SELECT id, name, base_price, customization_fee, installation_available, created_at
		FROM products
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var result []*queries.ProductView
	for rows.Next() {
		var (
			rowID                       pgtype.UUID
			name                        string
			basePrice, customizationFee pgtype.Numeric
			installationAvailable       bool
			createdAt                   pgtype.Timestamptz
		)
		if err := rows.Scan(&rowID, &name, &basePrice, &customizationFee, &installationAvailable, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		result = append(result, &queries.ProductView{
			ID:                    uuid.UUID(rowID.Bytes),
			Name:                  name,
			BasePrice:             pgconv.DecimalFromNumeric(basePrice),
			CustomizationFee:      pgconv.DecimalFromNumeric(customizationFee),
			InstallationAvailable: installationAvailable,
			CreatedAt:             pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate product rows", err)
	}
	return result, nil
}
