package repository

import (
	"context"
	"time"

	"quoteflow/internal/infra"
	"quoteflow/internal/infra/db"
	"quoteflow/internal/pkg/pgconv"
	"quoteflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	dbtx db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) shared.IdempotencyRepository {
	return &IdempotencyRepository{dbtx: dbtx}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	const query = `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, 'processing', $5, now())
		ON CONFLICT (key, user_id) DO NOTHING`

	tag, err := r.dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
		endpoint,
		requestHash,
		pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return convertPgError("failed to insert idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key already exists", nil, infra.KindDuplicateKey)
	}
	return nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key, userID, resultRequestID uuid.UUID) error {
	const query = `
		UPDATE idempotency_keys
		SET status = 'completed', result_request_id = $3
		WHERE key = $1 AND user_id = $2`

	tag, err := r.dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
		pgconv.UUIDToPgtype(resultRequestID),
	)
	if err != nil {
		return convertPgError("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

// ClaimExpiredKey re-arms an expired key for reuse. Returns the number of rows
// claimed (0 means the key is still live and the caller must treat it as a
// duplicate).
func (r *IdempotencyRepository) ClaimExpiredKey(ctx context.Context, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	const query = `
		UPDATE idempotency_keys
		SET request_hash = $3, status = 'processing', result_request_id = NULL,
		    expires_at = $4, created_at = now()
		WHERE key = $1 AND user_id = $2 AND expires_at <= now()`

	tag, err := r.dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
		requestHash,
		pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return 0, convertPgError("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}
