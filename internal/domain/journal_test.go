package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func line(account, debit, credit string) JournalEntryLine {
	return JournalEntryLine{
		AccountID: account,
		Debit:     decimal.RequireFromString(debit),
		Credit:    decimal.RequireFromString(credit),
	}
}

func TestLineValidate(t *testing.T) {
	tests := []struct {
		name    string
		line    JournalEntryLine
		wantErr error
	}{
		{"valid debit", line("1130", "100", "0"), nil},
		{"valid credit", line("4100", "0", "100"), nil},
		{"missing account", line("", "100", "0"), ErrAccountRequired},
		{"negative debit", line("1130", "-5", "0"), ErrNegativeAmount},
		{"negative credit", line("1130", "0", "-5"), ErrNegativeAmount},
		{"both sides set", line("1130", "50", "50"), ErrTwoSidedLine},
		{"both sides zero", line("1130", "0", "0"), ErrEmptyLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateBalance(t *testing.T) {
	tests := []struct {
		name       string
		lines      []JournalEntryLine
		unbalanced bool
	}{
		{
			name: "exactly balanced",
			lines: []JournalEntryLine{
				line("1130", "115", "0"),
				line("4100", "0", "100"),
				line("2130", "0", "15"),
			},
		},
		{
			name: "difference within tolerance",
			lines: []JournalEntryLine{
				line("1130", "100.01", "0"),
				line("4100", "0", "100"),
			},
		},
		{
			name: "difference beyond tolerance",
			lines: []JournalEntryLine{
				line("1130", "100.02", "0"),
				line("4100", "0", "100"),
			},
			unbalanced: true,
		},
		{
			name: "grossly unbalanced",
			lines: []JournalEntryLine{
				line("1130", "200", "0"),
				line("4100", "0", "100"),
			},
			unbalanced: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBalance(tt.lines)
			if tt.unbalanced {
				var unbalancedErr *UnbalancedEntryError
				if !errors.As(err, &unbalancedErr) {
					t.Fatalf("expected UnbalancedEntryError, got %v", err)
				}
				if unbalancedErr.TotalDebit.IsZero() || unbalancedErr.TotalCredit.IsZero() {
					t.Fatal("expected error to carry both totals")
				}
			} else if err != nil {
				t.Fatalf("expected balanced, got %v", err)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	debit, credit := Totals([]JournalEntryLine{
		line("1130", "115", "0"),
		line("4100", "0", "100"),
		line("2130", "0", "15"),
	})

	if !debit.Equal(decimal.NewFromInt(115)) {
		t.Fatalf("expected debit 115, got %s", debit)
	}
	if !credit.Equal(decimal.NewFromInt(115)) {
		t.Fatalf("expected credit 115, got %s", credit)
	}
}

func TestEntryNumberFormat(t *testing.T) {
	tests := []struct {
		prefix   string
		sequence int64
		want     string
	}{
		{"202403", 1, "JE-202403-00001"},
		{"202403", 42, "JE-202403-00042"},
		{"202512", 99999, "JE-202512-99999"},
		{"202512", 100000, "JE-202512-100000"},
	}

	for _, tt := range tests {
		if got := EntryNumber(tt.prefix, tt.sequence); got != tt.want {
			t.Fatalf("EntryNumber(%s, %d) = %s, want %s", tt.prefix, tt.sequence, got, tt.want)
		}
	}
}

func TestMonthPrefix(t *testing.T) {
	at := time.Date(2024, time.March, 7, 15, 4, 5, 0, time.UTC)
	if got := MonthPrefix(at); got != "202403" {
		t.Fatalf("expected 202403, got %s", got)
	}
}

func TestReferenceTypeValid(t *testing.T) {
	for _, rt := range []ReferenceType{
		ReferenceSalesInvoice, ReferencePurchaseInvoice,
		ReferenceSalesReturn, ReferencePurchaseReturn,
		ReferenceReceipt, ReferencePayment,
		ReferenceStockAdjustment, ReferenceStockTransfer,
	} {
		if !rt.Valid() {
			t.Fatalf("expected %s to be valid", rt)
		}
	}

	if ReferenceType("manual").Valid() {
		t.Fatal("expected manual to be invalid")
	}
}
