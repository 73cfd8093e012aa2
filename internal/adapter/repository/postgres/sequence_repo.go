package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gojournal/internal/infrastructure/postgres/generated"
	"github.com/iho/gojournal/internal/usecase"
)

// SequenceRepository implements usecase.SequenceRepository with an
// upsert-increment on the (company, month) row. Because the increment
// runs inside the caller's transaction, concurrent postings for the
// same company and month serialize on the row lock and each observe a
// distinct value.
type SequenceRepository struct {
	pool *pgxpool.Pool
}

// NewSequenceRepository creates a new SequenceRepository.
func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{pool: pool}
}

// NextValue atomically increments and returns the sequence for the
// (company, month) pair.
func (r *SequenceRepository) NextValue(ctx context.Context, tx usecase.Transaction, companyID, monthPrefix string) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.NextEntrySequence(ctx, generated.NextEntrySequenceParams{
		CompanyID:   companyID,
		MonthPrefix: monthPrefix,
	})
}
