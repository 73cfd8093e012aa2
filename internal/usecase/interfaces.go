package usecase

import (
	"context"
	"time"

	"github.com/iho/gojournal/internal/domain"
)

// JournalRepository defines data access for journal entries and lines.
type JournalRepository interface {
	CreateEntry(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	CreateLines(ctx context.Context, tx Transaction, lines []domain.JournalEntryLine) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetByReference(ctx context.Context, companyID string, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.JournalEntry, error)
}

// SequenceRepository allocates entry numbers. NextValue must increment
// atomically per (company, month) inside the caller's transaction.
type SequenceRepository interface {
	NextValue(ctx context.Context, tx Transaction, companyID, monthPrefix string) (int64, error)
}

// ChartRepository defines data access for per-company account mappings.
type ChartRepository interface {
	GetMapping(ctx context.Context, companyID string) (*domain.ChartMapping, error)
	UpsertAccount(ctx context.Context, companyID string, role domain.AccountRole, accountID string) error
}

// IdempotencyRepository stores idempotency records.
type IdempotencyRepository interface {
	// Claim inserts a pending record if the key is absent.
	// Returns (claimed, existing record when not claimed).
	Claim(ctx context.Context, key string, expiresAt time.Time) (bool, *domain.IdempotencyRecord, error)
	Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
	Complete(ctx context.Context, key string, responseBody []byte, statusCode int) error
	Release(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient store errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
