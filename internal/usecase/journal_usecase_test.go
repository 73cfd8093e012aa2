package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
	"github.com/iho/gojournal/internal/usecase/mocks"
)

type journalFixture struct {
	uc          *usecase.JournalUseCase
	txMgr       *mocks.MockTransactionManager
	journalRepo *mocks.MockJournalRepository
	seqRepo     *mocks.MockSequenceRepository
	outboxRepo  *mocks.MockOutboxRepository
	idemRepo    *mocks.MockIdempotencyRepository
}

func newJournalFixture(now time.Time) *journalFixture {
	f := &journalFixture{
		txMgr:       mocks.NewMockTransactionManager(),
		journalRepo: mocks.NewMockJournalRepository(),
		seqRepo:     mocks.NewMockSequenceRepository(),
		outboxRepo:  mocks.NewMockOutboxRepository(),
		idemRepo:    mocks.NewMockIdempotencyRepository(),
	}

	idemUC := usecase.NewIdempotencyUseCase(f.idemRepo, time.Hour)
	f.uc = usecase.NewJournalUseCase(
		f.txMgr, f.journalRepo, f.seqRepo, f.outboxRepo,
		idemUC, mocks.NewMockIDGenerator("id"), &mocks.NopRetrier{}, nil,
	)
	f.uc.WithNow(func() time.Time { return now })

	return f
}

func balancedInput(refID string) usecase.CreateJournalEntryInput {
	return usecase.CreateJournalEntryInput{
		CompanyID:     "comp-1",
		Description:   "Sales invoice " + refID,
		ReferenceType: domain.ReferenceSalesInvoice,
		ReferenceID:   refID,
		Lines: []usecase.JournalLineInput{
			{AccountID: "1130", Debit: decimal.NewFromInt(115)},
			{AccountID: "4100", Credit: decimal.NewFromInt(100)},
			{AccountID: "2130", Credit: decimal.NewFromInt(15)},
		},
	}
}

func TestCreateJournalEntrySuccess(t *testing.T) {
	now := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
	f := newJournalFixture(now)

	result, err := f.uc.CreateJournalEntry(context.Background(), balancedInput("inv-1"))
	if err != nil {
		t.Fatalf("posting failed: %v", err)
	}

	if result.EntryNumber != "JE-202403-00001" {
		t.Fatalf("expected JE-202403-00001, got %s", result.EntryNumber)
	}
	if !result.TotalDebit.Equal(decimal.NewFromInt(115)) || !result.TotalCredit.Equal(decimal.NewFromInt(115)) {
		t.Fatalf("unexpected totals: %s / %s", result.TotalDebit, result.TotalCredit)
	}
	if result.IsReplay {
		t.Fatal("first posting must not be a replay")
	}

	entry := f.journalRepo.Stored(result.JournalEntryID)
	if entry == nil {
		t.Fatal("entry not persisted")
	}
	if len(entry.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(entry.Lines))
	}
	if entry.Status != domain.EntryStatusPosted {
		t.Fatalf("expected posted status, got %s", entry.Status)
	}
	if entry.IdempotencyKey != "journal_entry:sales_invoice:inv-1" {
		t.Fatalf("unexpected idempotency key: %s", entry.IdempotencyKey)
	}

	if len(f.txMgr.Transactions) != 1 || !f.txMgr.Transactions[0].Committed {
		t.Fatal("expected a committed transaction")
	}

	events := f.outboxRepo.Events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeJournalPosted {
		t.Fatalf("expected one journal posted event, got %#v", events)
	}
}

func TestCreateJournalEntryReplay(t *testing.T) {
	now := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
	f := newJournalFixture(now)

	first, err := f.uc.CreateJournalEntry(context.Background(), balancedInput("inv-1"))
	if err != nil {
		t.Fatalf("posting failed: %v", err)
	}

	second, err := f.uc.CreateJournalEntry(context.Background(), balancedInput("inv-1"))
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	if !second.IsReplay {
		t.Fatal("expected replay")
	}
	if second.EntryNumber != first.EntryNumber || second.JournalEntryID != first.JournalEntryID {
		t.Fatalf("replay must return the original result: %v vs %v", second, first)
	}

	if f.journalRepo.Count() != 1 {
		t.Fatalf("replay must not write a second entry, have %d", f.journalRepo.Count())
	}
	if len(f.outboxRepo.Events()) != 1 {
		t.Fatal("replay must not emit a second event")
	}
}

func TestCreateJournalEntryUnbalancedWritesNothing(t *testing.T) {
	f := newJournalFixture(time.Now())

	input := balancedInput("inv-1")
	input.Lines[0].Debit = decimal.NewFromInt(200)

	_, err := f.uc.CreateJournalEntry(context.Background(), input)

	var unbalanced *domain.UnbalancedEntryError
	if !errors.As(err, &unbalanced) {
		t.Fatalf("expected UnbalancedEntryError, got %v", err)
	}
	if !unbalanced.TotalDebit.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected debit total 200 in error, got %s", unbalanced.TotalDebit)
	}

	if f.journalRepo.Count() != 0 {
		t.Fatal("unbalanced posting must not write")
	}
	if len(f.txMgr.Transactions) != 0 {
		t.Fatal("unbalanced posting must not open a transaction")
	}
	if f.idemRepo.Record("journal_entry:sales_invoice:inv-1") != nil {
		t.Fatal("unbalanced posting must not claim the key")
	}
}

func TestCreateJournalEntryValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*usecase.CreateJournalEntryInput)
		wantErr error
	}{
		{
			name:    "missing company",
			mutate:  func(in *usecase.CreateJournalEntryInput) { in.CompanyID = "" },
			wantErr: domain.ErrCompanyRequired,
		},
		{
			name:    "invalid reference type",
			mutate:  func(in *usecase.CreateJournalEntryInput) { in.ReferenceType = "manual" },
			wantErr: domain.ErrInvalidReferenceType,
		},
		{
			name:    "missing reference id",
			mutate:  func(in *usecase.CreateJournalEntryInput) { in.ReferenceID = "" },
			wantErr: domain.ErrReferenceRequired,
		},
		{
			name:    "no lines",
			mutate:  func(in *usecase.CreateJournalEntryInput) { in.Lines = nil },
			wantErr: domain.ErrNoLines,
		},
		{
			name: "line with both sides",
			mutate: func(in *usecase.CreateJournalEntryInput) {
				in.Lines[0].Credit = in.Lines[0].Debit
			},
			wantErr: domain.ErrTwoSidedLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newJournalFixture(time.Now())

			input := balancedInput("inv-1")
			tt.mutate(&input)

			_, err := f.uc.CreateJournalEntry(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if f.journalRepo.Count() != 0 {
				t.Fatal("rejected posting must not write")
			}
		})
	}
}

func TestCreateJournalEntryLineFailureRollsBack(t *testing.T) {
	f := newJournalFixture(time.Now())

	storeErr := errors.New("lines insert failed")
	f.journalRepo.CreateLinesFunc = func(ctx context.Context, tx usecase.Transaction, lines []domain.JournalEntryLine) error {
		return storeErr
	}

	_, err := f.uc.CreateJournalEntry(context.Background(), balancedInput("inv-1"))
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}

	if len(f.txMgr.Transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(f.txMgr.Transactions))
	}
	tx := f.txMgr.Transactions[0]
	if tx.Committed || !tx.RolledBack {
		t.Fatalf("expected rollback, got committed=%v rolledback=%v", tx.Committed, tx.RolledBack)
	}

	// The claim is released so the caller can retry.
	if f.idemRepo.Record("journal_entry:sales_invoice:inv-1") != nil {
		t.Fatal("claim must be released after a failed posting")
	}
}

func TestCreateJournalEntrySequencePerCompanyAndMonth(t *testing.T) {
	now := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
	f := newJournalFixture(now)

	first, err := f.uc.CreateJournalEntry(context.Background(), balancedInput("inv-1"))
	if err != nil {
		t.Fatalf("posting failed: %v", err)
	}

	second, err := f.uc.CreateJournalEntry(context.Background(), balancedInput("inv-2"))
	if err != nil {
		t.Fatalf("posting failed: %v", err)
	}

	if first.EntryNumber != "JE-202403-00001" || second.EntryNumber != "JE-202403-00002" {
		t.Fatalf("expected consecutive numbers, got %s and %s", first.EntryNumber, second.EntryNumber)
	}

	otherCompany := balancedInput("inv-1")
	otherCompany.CompanyID = "comp-2"

	third, err := f.uc.CreateJournalEntry(context.Background(), otherCompany)
	if err != nil {
		t.Fatalf("posting failed: %v", err)
	}
	if third.EntryNumber != "JE-202403-00001" {
		t.Fatalf("sequences must be independent per company, got %s", third.EntryNumber)
	}
}

func TestCreateJournalEntryBackdatedUsesPostingMonth(t *testing.T) {
	now := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
	f := newJournalFixture(now)

	input := balancedInput("inv-1")
	input.EntryDate = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	result, err := f.uc.CreateJournalEntry(context.Background(), input)
	if err != nil {
		t.Fatalf("posting failed: %v", err)
	}

	// Numbering keys off the posting month, not the entry date.
	if result.EntryNumber != "JE-202403-00001" {
		t.Fatalf("expected posting month prefix, got %s", result.EntryNumber)
	}

	entry := f.journalRepo.Stored(result.JournalEntryID)
	if !entry.EntryDate.Equal(input.EntryDate) {
		t.Fatalf("entry date must be preserved, got %s", entry.EntryDate)
	}
}

func TestListJournalEntriesClampsPageSize(t *testing.T) {
	f := newJournalFixture(time.Now())

	var gotLimit int
	f.journalRepo.ListByCompanyFunc = func(ctx context.Context, companyID string, limit, offset int) ([]*domain.JournalEntry, error) {
		gotLimit = limit
		return nil, nil
	}

	if _, err := f.uc.ListJournalEntries(context.Background(), usecase.ListJournalEntriesInput{
		CompanyID: "comp-1",
		Limit:     10000,
	}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotLimit != usecase.MaxPageSize {
		t.Fatalf("expected limit clamped to %d, got %d", usecase.MaxPageSize, gotLimit)
	}

	if _, err := f.uc.ListJournalEntries(context.Background(), usecase.ListJournalEntriesInput{
		CompanyID: "comp-1",
	}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotLimit != usecase.DefaultPageSize {
		t.Fatalf("expected default limit %d, got %d", usecase.DefaultPageSize, gotLimit)
	}

	if _, err := f.uc.ListJournalEntries(context.Background(), usecase.ListJournalEntriesInput{}); !errors.Is(err, domain.ErrCompanyRequired) {
		t.Fatal("expected ErrCompanyRequired without company")
	}
}
