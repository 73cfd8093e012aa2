package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/infrastructure/metrics"
)

// JournalUseCase converts validated line sets into numbered, persisted
// ledger entries. Header, lines, sequence increment, and outbox event
// are written inside one transaction.
type JournalUseCase struct {
	txManager    TransactionManager
	journalRepo  JournalRepository
	sequenceRepo SequenceRepository
	outboxRepo   OutboxRepository
	idempotency  *IdempotencyUseCase
	idGen        IDGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(
	txManager TransactionManager,
	journalRepo JournalRepository,
	sequenceRepo SequenceRepository,
	outboxRepo OutboxRepository,
	idempotency *IdempotencyUseCase,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *JournalUseCase {
	return &JournalUseCase{
		txManager:    txManager,
		journalRepo:  journalRepo,
		sequenceRepo: sequenceRepo,
		outboxRepo:   outboxRepo,
		idempotency:  idempotency,
		idGen:        idGen,
		retrier:      retrier,
		metrics:      m,
		now:          time.Now,
	}
}

// WithNow overrides the clock for testing.
func (uc *JournalUseCase) WithNow(now func() time.Time) {
	if now != nil {
		uc.now = now
	}
}

// JournalLineInput represents one line of a posting request.
type JournalLineInput struct {
	AccountID    string
	Description  string
	CostCenterID *string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
}

// CreateJournalEntryInput represents input for creating a journal entry.
type CreateJournalEntryInput struct {
	EntryDate     time.Time
	CompanyID     string
	BranchID      *string
	Description   string
	ReferenceType domain.ReferenceType
	ReferenceID   string
	Lines         []JournalLineInput
}

// PostResult is the outcome of a posting call.
type PostResult struct {
	JournalEntryID string          `json:"journal_entry_id"`
	EntryNumber    string          `json:"entry_number"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	IsReplay       bool            `json:"-"`
}

// CreateJournalEntry validates, numbers, and persists a journal entry.
// The whole call is idempotent per (reference_type, reference_id):
// replays return the first result without writing.
func (uc *JournalUseCase) CreateJournalEntry(ctx context.Context, input CreateJournalEntryInput) (*PostResult, error) {
	start := uc.now()

	lines, err := uc.validate(input)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.PostingsRejected.WithLabelValues(string(input.ReferenceType)).Inc()
		}

		return nil, err
	}

	key := DeriveKey("journal_entry", string(input.ReferenceType), input.ReferenceID)

	result, err := uc.idempotency.Execute(ctx, key, func(ctx context.Context) ([]byte, error) {
		posted, err := uc.post(ctx, input, lines, key)
		if err != nil {
			return nil, err
		}

		return json.Marshal(posted)
	})
	if err != nil {
		if uc.metrics != nil && errors.Is(err, domain.ErrPostingInFlight) {
			uc.metrics.IdempotencyConflicts.Inc()
		}

		return nil, err
	}

	var posted PostResult
	if err := json.Unmarshal(result.Data, &posted); err != nil {
		return nil, err
	}

	posted.IsReplay = result.IsReplay

	if uc.metrics != nil {
		if result.IsReplay {
			uc.metrics.IdempotentReplays.Inc()
		} else {
			uc.metrics.PostingsCreated.WithLabelValues(string(input.ReferenceType)).Inc()
			uc.metrics.PostingDuration.Observe(time.Since(start).Seconds())
		}
	}

	return &posted, nil
}

func (uc *JournalUseCase) validate(input CreateJournalEntryInput) ([]domain.JournalEntryLine, error) {
	if input.CompanyID == "" {
		return nil, domain.ErrCompanyRequired
	}

	if !input.ReferenceType.Valid() {
		return nil, domain.ErrInvalidReferenceType
	}

	if input.ReferenceID == "" {
		return nil, domain.ErrReferenceRequired
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	if err := domain.ValidateLineCount(len(input.Lines)); err != nil {
		return nil, err
	}

	lines := make([]domain.JournalEntryLine, len(input.Lines))
	for i, li := range input.Lines {
		lines[i] = domain.JournalEntryLine{
			AccountID:    li.AccountID,
			Description:  li.Description,
			CostCenterID: li.CostCenterID,
			Debit:        li.Debit,
			Credit:       li.Credit,
		}

		if err := lines[i].Validate(); err != nil {
			return nil, err
		}

		if err := domain.ValidateAmount(lines[i].Debit.Add(lines[i].Credit)); err != nil {
			return nil, err
		}
	}

	if err := domain.ValidateBalance(lines); err != nil {
		return nil, err
	}

	return lines, nil
}

// post performs the transactional write. Sequence allocation happens
// inside the same transaction as the header insert, so concurrent
// postings for one company/month serialize on the sequence row.
func (uc *JournalUseCase) post(ctx context.Context, input CreateJournalEntryInput, lines []domain.JournalEntryLine, key string) (*PostResult, error) {
	totalDebit, totalCredit := domain.Totals(lines)
	now := uc.now().UTC()
	monthPrefix := domain.MonthPrefix(now)

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = now
	}

	var result *PostResult

	operation := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		sequence, err := uc.sequenceRepo.NextValue(ctx, tx, input.CompanyID, monthPrefix)
		if err != nil {
			return err
		}

		entry := &domain.JournalEntry{
			ID:             uc.idGen.Generate(),
			CompanyID:      input.CompanyID,
			BranchID:       input.BranchID,
			EntryNumber:    domain.EntryNumber(monthPrefix, sequence),
			EntryDate:      entryDate,
			Description:    input.Description,
			ReferenceType:  input.ReferenceType,
			ReferenceID:    input.ReferenceID,
			IdempotencyKey: key,
			TotalDebit:     totalDebit,
			TotalCredit:    totalCredit,
			Status:         domain.EntryStatusPosted,
			CreatedAt:      now,
		}

		if err := uc.journalRepo.CreateEntry(ctx, tx, entry); err != nil {
			return err
		}

		entryLines := make([]domain.JournalEntryLine, len(lines))
		copy(entryLines, lines)
		for i := range entryLines {
			entryLines[i].ID = uc.idGen.Generate()
			entryLines[i].JournalEntryID = entry.ID
			entryLines[i].CreatedAt = now
		}

		if err := uc.journalRepo.CreateLines(ctx, tx, entryLines); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   entry.ID,
			AggregateType: domain.AggregateTypeJournalEntry,
			EventType:     domain.EventTypeJournalPosted,
			Payload: map[string]any{
				"journal_entry_id": entry.ID,
				"company_id":       entry.CompanyID,
				"entry_number":     entry.EntryNumber,
				"reference_type":   string(entry.ReferenceType),
				"reference_id":     entry.ReferenceID,
				"total_debit":      totalDebit.String(),
				"total_credit":     totalCredit.String(),
				"entry_date":       entryDate.Format("2006-01-02"),
			},
			CreatedAt: now,
		}

		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result = &PostResult{
			JournalEntryID: entry.ID,
			EntryNumber:    entry.EntryNumber,
			TotalDebit:     totalDebit,
			TotalCredit:    totalCredit,
		}

		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}

	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetJournalEntry retrieves a journal entry with its lines.
func (uc *JournalUseCase) GetJournalEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.journalRepo.GetByID(ctx, id)
}

// GetByReference retrieves the entry posted for a business document.
func (uc *JournalUseCase) GetByReference(ctx context.Context, companyID string, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error) {
	return uc.journalRepo.GetByReference(ctx, companyID, refType, refID)
}

// ListJournalEntriesInput represents input for listing entries.
type ListJournalEntriesInput struct {
	CompanyID string
	Limit     int
	Offset    int
}

// ListJournalEntries lists entries for a company, newest first.
func (uc *JournalUseCase) ListJournalEntries(ctx context.Context, input ListJournalEntriesInput) ([]*domain.JournalEntry, error) {
	if input.CompanyID == "" {
		return nil, domain.ErrCompanyRequired
	}

	if input.Limit <= 0 {
		input.Limit = DefaultPageSize
	}

	if input.Limit > MaxPageSize {
		input.Limit = MaxPageSize
	}

	return uc.journalRepo.ListByCompany(ctx, input.CompanyID, input.Limit, input.Offset)
}
