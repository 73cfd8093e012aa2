package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/infrastructure/postgres/generated"
	"github.com/iho/gojournal/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateEntry inserts the entry header within a transaction.
func (r *JournalRepository) CreateEntry(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateJournalEntry(ctx, generated.CreateJournalEntryParams{
		ID:             entry.ID,
		CompanyID:      entry.CompanyID,
		BranchID:       textFromPtr(entry.BranchID),
		EntryNumber:    entry.EntryNumber,
		EntryDate:      dateFromTime(entry.EntryDate),
		Description:    entry.Description,
		ReferenceType:  string(entry.ReferenceType),
		ReferenceID:    entry.ReferenceID,
		IdempotencyKey: entry.IdempotencyKey,
		TotalDebit:     decimalToNumeric(entry.TotalDebit),
		TotalCredit:    decimalToNumeric(entry.TotalCredit),
		Status:         string(entry.Status),
		CreatedAt:      timeToPgTimestamptz(entry.CreatedAt),
	})

	return err
}

// CreateLines inserts all lines within the same transaction as the header.
func (r *JournalRepository) CreateLines(ctx context.Context, tx usecase.Transaction, lines []domain.JournalEntryLine) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	for _, line := range lines {
		_, err := queries.CreateJournalEntryLine(ctx, generated.CreateJournalEntryLineParams{
			ID:             line.ID,
			JournalEntryID: line.JournalEntryID,
			AccountID:      line.AccountID,
			Description:    line.Description,
			CostCenterID:   textFromPtr(line.CostCenterID),
			Debit:          decimalToNumeric(line.Debit),
			Credit:         decimalToNumeric(line.Credit),
			CreatedAt:      timeToPgTimestamptz(line.CreatedAt),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an entry with its lines.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	row, err := r.queries.GetJournalEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry := rowToJournalEntry(row)

	lineRows, err := r.queries.GetJournalLinesByEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Lines = make([]domain.JournalEntryLine, 0, len(lineRows))
	for _, lr := range lineRows {
		entry.Lines = append(entry.Lines, rowToJournalLine(lr))
	}

	return entry, nil
}

// GetByReference retrieves the entry posted for a business document.
func (r *JournalRepository) GetByReference(ctx context.Context, companyID string, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error) {
	row, err := r.queries.GetJournalEntryByReference(ctx, generated.GetJournalEntryByReferenceParams{
		CompanyID:     companyID,
		ReferenceType: string(refType),
		ReferenceID:   refID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return r.GetByID(ctx, row.ID)
}

// ListByCompany lists entries for a company, newest first, without lines.
func (r *JournalRepository) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.JournalEntry, error) {
	rows, err := r.queries.ListJournalEntriesByCompany(ctx, generated.ListJournalEntriesByCompanyParams{
		CompanyID: companyID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToJournalEntry(row))
	}

	return entries, nil
}

func rowToJournalEntry(row generated.JournalEntry) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:             row.ID,
		CompanyID:      row.CompanyID,
		BranchID:       ptrFromText(row.BranchID),
		EntryNumber:    row.EntryNumber,
		EntryDate:      row.EntryDate.Time,
		Description:    row.Description,
		ReferenceType:  domain.ReferenceType(row.ReferenceType),
		ReferenceID:    row.ReferenceID,
		IdempotencyKey: row.IdempotencyKey,
		TotalDebit:     numericToDecimal(row.TotalDebit),
		TotalCredit:    numericToDecimal(row.TotalCredit),
		Status:         domain.EntryStatus(row.Status),
		CreatedAt:      row.CreatedAt.Time,
	}
}

func rowToJournalLine(row generated.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		ID:             row.ID,
		JournalEntryID: row.JournalEntryID,
		AccountID:      row.AccountID,
		Description:    row.Description,
		CostCenterID:   ptrFromText(row.CostCenterID),
		Debit:          numericToDecimal(row.Debit),
		Credit:         numericToDecimal(row.Credit),
		CreatedAt:      row.CreatedAt.Time,
	}
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func dateFromTime(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}

func textFromPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *s, Valid: true}
}

func ptrFromText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}

	s := t.String

	return &s
}
