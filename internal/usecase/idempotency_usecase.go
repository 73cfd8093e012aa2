package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iho/gojournal/internal/domain"
)

// IdempotencyUseCase guards an operation so that a given key executes
// at most once. The claim step is an insert-if-absent: the first caller
// wins and runs the operation, concurrent callers holding the same key
// observe either the stored result or a pending-claim conflict.
type IdempotencyUseCase struct {
	repo IdempotencyRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewIdempotencyUseCase creates a new IdempotencyUseCase.
func NewIdempotencyUseCase(repo IdempotencyRepository, ttl time.Duration) *IdempotencyUseCase {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}

	return &IdempotencyUseCase{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
}

// DeriveKey builds an idempotency key as a pure function of the
// operation name and its business identifiers. Callers retrying the
// same logical attempt derive the same key; no timestamp or random
// salt is mixed in.
func DeriveKey(operation string, params ...string) string {
	parts := append([]string{operation}, params...)
	return strings.Join(parts, ":")
}

// IdempotencyResult is the outcome of a guarded execution.
type IdempotencyResult struct {
	Data       []byte
	StatusCode int
	IsReplay   bool
}

// Execute runs op under the key. A replay of a completed key returns
// the stored payload without re-invoking op. A pending claim held by
// another caller surfaces domain.ErrPostingInFlight. When op fails the
// claim is released so a later retry can execute again.
func (uc *IdempotencyUseCase) Execute(ctx context.Context, key string, op func(ctx context.Context) ([]byte, error)) (*IdempotencyResult, error) {
	claimed, existing, err := uc.repo.Claim(ctx, key, uc.now().Add(uc.ttl))
	if err != nil {
		return nil, fmt.Errorf("idempotency claim: %w", err)
	}

	if !claimed {
		if existing != nil && existing.Completed() {
			return &IdempotencyResult{
				Data:       existing.ResponseBody,
				StatusCode: existing.StatusCode,
				IsReplay:   true,
			}, nil
		}

		return nil, domain.ErrPostingInFlight
	}

	data, err := op(ctx)
	if err != nil {
		// Release so the caller can retry the same key.
		_ = uc.repo.Release(ctx, key)
		return nil, err
	}

	if err := uc.repo.Complete(ctx, key, data, 200); err != nil {
		// The operation already took effect; keep the pending claim in
		// place rather than inviting a second execution.
		return &IdempotencyResult{Data: data, StatusCode: 200}, fmt.Errorf("idempotency save: %w", err)
	}

	return &IdempotencyResult{Data: data, StatusCode: 200}, nil
}

// Check is a read-only probe. It returns the record when the key is
// known and nil when it is not.
func (uc *IdempotencyUseCase) Check(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	record, err := uc.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrIdempotencyKeyNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return record, nil
}

// SaveResult is the explicit write path for callers managing their own
// control flow instead of using Execute.
func (uc *IdempotencyUseCase) SaveResult(ctx context.Context, key string, data []byte, statusCode int) error {
	if _, _, err := uc.repo.Claim(ctx, key, uc.now().Add(uc.ttl)); err != nil {
		return err
	}

	return uc.repo.Complete(ctx, key, data, statusCode)
}

// CleanupExpired deletes records past their expiry. Intended to run on
// a schedule, not on the request path.
func (uc *IdempotencyUseCase) CleanupExpired(ctx context.Context) (int64, error) {
	return uc.repo.DeleteExpired(ctx, uc.now())
}
