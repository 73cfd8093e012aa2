package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReferenceType identifies the business document a journal entry was posted from.
type ReferenceType string

const (
	ReferenceSalesInvoice    ReferenceType = "sales_invoice"
	ReferencePurchaseInvoice ReferenceType = "purchase_invoice"
	ReferenceSalesReturn     ReferenceType = "sales_return"
	ReferencePurchaseReturn  ReferenceType = "purchase_return"
	ReferenceReceipt         ReferenceType = "receipt"
	ReferencePayment         ReferenceType = "payment"
	ReferenceStockAdjustment ReferenceType = "stock_adjustment"
	ReferenceStockTransfer   ReferenceType = "stock_transfer"
)

// Valid reports whether the reference type is one of the known document types.
func (rt ReferenceType) Valid() bool {
	switch rt {
	case ReferenceSalesInvoice, ReferencePurchaseInvoice,
		ReferenceSalesReturn, ReferencePurchaseReturn,
		ReferenceReceipt, ReferencePayment,
		ReferenceStockAdjustment, ReferenceStockTransfer:
		return true
	}
	return false
}

// EntryStatus is the lifecycle state of a journal entry.
// Entries are posted atomically; there is no draft workflow.
type EntryStatus string

const EntryStatusPosted EntryStatus = "posted"

// BalanceTolerance is the maximum accepted difference between total
// debit and total credit of an entry.
var BalanceTolerance = decimal.New(1, -2) // 0.01

// JournalEntry is one balanced set of debit/credit lines recording a
// single business event in the general ledger.
type JournalEntry struct {
	CreatedAt      time.Time
	EntryDate      time.Time
	ID             string
	CompanyID      string
	BranchID       *string
	EntryNumber    string
	Description    string
	ReferenceType  ReferenceType
	ReferenceID    string
	IdempotencyKey string
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	Status         EntryStatus
	Lines          []JournalEntryLine
}

// JournalEntryLine is a single debit or credit against one account.
// Lines belong exclusively to their entry.
type JournalEntryLine struct {
	CreatedAt      time.Time
	ID             string
	JournalEntryID string
	AccountID      string
	Description    string
	CostCenterID   *string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
}

// Validate checks a single line: amounts must be non-negative and
// exactly one side must be non-zero.
func (l *JournalEntryLine) Validate() error {
	if l.AccountID == "" {
		return ErrAccountRequired
	}

	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return ErrNegativeAmount
	}

	if l.Debit.IsPositive() && l.Credit.IsPositive() {
		return ErrTwoSidedLine
	}

	if l.Debit.IsZero() && l.Credit.IsZero() {
		return ErrEmptyLine
	}

	return nil
}

// Totals sums debit and credit across lines.
func Totals(lines []JournalEntryLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}

	return debit, credit
}

// ValidateBalance checks the debit/credit totals of the lines against
// the balance tolerance.
func ValidateBalance(lines []JournalEntryLine) error {
	debit, credit := Totals(lines)
	if debit.Sub(credit).Abs().GreaterThan(BalanceTolerance) {
		return &UnbalancedEntryError{TotalDebit: debit, TotalCredit: credit}
	}

	return nil
}

// UnbalancedEntryError reports a debit/credit mismatch. It carries both
// totals so callers can render a localized message.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry is not balanced: debit %s != credit %s",
		e.TotalDebit.String(), e.TotalCredit.String())
}

// EntryNumber formats a human-readable entry number from a month prefix
// (YYYYMM) and a sequence value, e.g. JE-202403-00042.
func EntryNumber(monthPrefix string, sequence int64) string {
	return fmt.Sprintf("JE-%s-%05d", monthPrefix, sequence)
}

// MonthPrefix formats the YYYYMM component used for entry numbering and
// sequence scoping. Numbering keys off the posting date, not the entry
// date, so backdated entries are numbered under the posting month.
func MonthPrefix(t time.Time) string {
	return t.Format("200601")
}
