package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/infrastructure/postgres/generated"
)

// IdempotencyRepository implements usecase.IdempotencyRepository.
// The claim is an insert-if-absent guarded by the primary key, so
// exactly one of any set of concurrent claimers wins.
type IdempotencyRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewIdempotencyRepository creates a new IdempotencyRepository.
func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Claim inserts a pending record for the key if absent. When the key
// already exists the stored record is returned so the caller can
// distinguish a completed result from an in-flight claim.
func (r *IdempotencyRepository) Claim(ctx context.Context, key string, expiresAt time.Time) (bool, *domain.IdempotencyRecord, error) {
	inserted, err := r.queries.ClaimIdempotencyKey(ctx, generated.ClaimIdempotencyKeyParams{
		Key:       key,
		ExpiresAt: timeToPgTimestamptz(expiresAt),
		CreatedAt: timeToPgTimestamptz(time.Now().UTC()),
	})
	if err != nil {
		return false, nil, err
	}

	if inserted > 0 {
		return true, nil, nil
	}

	existing, err := r.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrIdempotencyKeyNotFound) {
			// Claimed and released between our insert and read.
			return false, nil, nil
		}

		return false, nil, err
	}

	return false, existing, nil
}

// Get retrieves a record by key.
func (r *IdempotencyRepository) Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdempotencyKeyNotFound
		}

		return nil, err
	}

	return rowToIdempotencyRecord(row), nil
}

// Complete stores the result for a claimed key.
func (r *IdempotencyRepository) Complete(ctx context.Context, key string, responseBody []byte, statusCode int) error {
	return r.queries.CompleteIdempotencyKey(ctx, generated.CompleteIdempotencyKeyParams{
		Key:          key,
		ResponseBody: responseBody,
		StatusCode:   pgtype.Int4{Int32: int32(statusCode), Valid: true},
	})
}

// Release removes a claim so the key can be retried.
func (r *IdempotencyRepository) Release(ctx context.Context, key string) error {
	return r.queries.DeleteIdempotencyKey(ctx, key)
}

// DeleteExpired purges records whose expiry has passed.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return r.queries.DeleteExpiredIdempotencyKeys(ctx, timeToPgTimestamptz(before))
}

func rowToIdempotencyRecord(row generated.IdempotencyKey) *domain.IdempotencyRecord {
	record := &domain.IdempotencyRecord{
		Key:          row.Key,
		Status:       domain.IdempotencyStatus(row.Status),
		ResponseBody: row.ResponseBody,
		ExpiresAt:    row.ExpiresAt.Time,
		CreatedAt:    row.CreatedAt.Time,
	}

	if row.StatusCode.Valid {
		record.StatusCode = int(row.StatusCode.Int32)
	}

	return record
}
