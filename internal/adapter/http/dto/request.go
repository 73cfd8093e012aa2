package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

var validate = validator.New()

// InvoiceRequest represents an invoice-shaped posting request. It covers
// sales invoices, purchase invoices, and both return directions.
type InvoiceRequest struct {
	CompanyID    string          `json:"company_id" validate:"required,max=64"`
	BranchID     *string         `json:"branch_id,omitempty"`
	DocumentID   string          `json:"document_id" validate:"required,max=64"`
	PartyAccount string          `json:"party_account,omitempty"`
	CostCenterID *string         `json:"cost_center_id,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	VATAmount    decimal.Decimal `json:"vat_amount"`
	Total        decimal.Decimal `json:"total"`
	VATEnabled   bool            `json:"vat_enabled"`
	EntryDate    *time.Time      `json:"entry_date,omitempty"`
}

// Validate checks structural constraints.
func (r *InvoiceRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *InvoiceRequest) ToUseCaseInput() usecase.InvoiceInput {
	return usecase.InvoiceInput{
		CompanyID:    r.CompanyID,
		BranchID:     r.BranchID,
		DocumentID:   r.DocumentID,
		PartyAccount: r.PartyAccount,
		CostCenterID: r.CostCenterID,
		Subtotal:     r.Subtotal,
		VATAmount:    r.VATAmount,
		Total:        r.Total,
		VATEnabled:   r.VATEnabled,
		EntryDate:    timeOrZero(r.EntryDate),
	}
}

// CashMovementRequest represents a receipt or payment posting request.
type CashMovementRequest struct {
	CompanyID      string          `json:"company_id" validate:"required,max=64"`
	BranchID       *string         `json:"branch_id,omitempty"`
	DocumentID     string          `json:"document_id" validate:"required,max=64"`
	PartyAccount   string          `json:"party_account,omitempty"`
	VaultAccountID *string         `json:"vault_account_id,omitempty"`
	BankAccountID  *string         `json:"bank_account_id,omitempty"`
	CostCenterID   *string         `json:"cost_center_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	EntryDate      *time.Time      `json:"entry_date,omitempty"`
}

// Validate checks structural constraints.
func (r *CashMovementRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *CashMovementRequest) ToUseCaseInput() usecase.CashMovementInput {
	return usecase.CashMovementInput{
		CompanyID:      r.CompanyID,
		BranchID:       r.BranchID,
		DocumentID:     r.DocumentID,
		PartyAccount:   r.PartyAccount,
		VaultAccountID: r.VaultAccountID,
		BankAccountID:  r.BankAccountID,
		CostCenterID:   r.CostCenterID,
		Amount:         r.Amount,
		EntryDate:      timeOrZero(r.EntryDate),
	}
}

// StockAdjustmentRequest represents a stock revaluation posting request.
type StockAdjustmentRequest struct {
	CompanyID    string          `json:"company_id" validate:"required,max=64"`
	BranchID     *string         `json:"branch_id,omitempty"`
	DocumentID   string          `json:"document_id" validate:"required,max=64"`
	Direction    string          `json:"direction" validate:"required,oneof=increase decrease"`
	CostCenterID *string         `json:"cost_center_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	EntryDate    *time.Time      `json:"entry_date,omitempty"`
}

// Validate checks structural constraints.
func (r *StockAdjustmentRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *StockAdjustmentRequest) ToUseCaseInput() usecase.StockAdjustmentInput {
	return usecase.StockAdjustmentInput{
		CompanyID:    r.CompanyID,
		BranchID:     r.BranchID,
		DocumentID:   r.DocumentID,
		Direction:    usecase.AdjustmentDirection(r.Direction),
		CostCenterID: r.CostCenterID,
		Amount:       r.Amount,
		EntryDate:    timeOrZero(r.EntryDate),
	}
}

// StockTransferRequest represents an inventory movement posting request.
type StockTransferRequest struct {
	CompanyID     string          `json:"company_id" validate:"required,max=64"`
	BranchID      *string         `json:"branch_id,omitempty"`
	DocumentID    string          `json:"document_id" validate:"required,max=64"`
	FromAccountID string          `json:"from_account_id,omitempty"`
	ToAccountID   string          `json:"to_account_id,omitempty"`
	CostCenterID  *string         `json:"cost_center_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	EntryDate     *time.Time      `json:"entry_date,omitempty"`
}

// Validate checks structural constraints.
func (r *StockTransferRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *StockTransferRequest) ToUseCaseInput() usecase.StockTransferInput {
	return usecase.StockTransferInput{
		CompanyID:     r.CompanyID,
		BranchID:      r.BranchID,
		DocumentID:    r.DocumentID,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		CostCenterID:  r.CostCenterID,
		Amount:        r.Amount,
		EntryDate:     timeOrZero(r.EntryDate),
	}
}

// JournalLineRequest represents one line of a caller-assembled entry.
type JournalLineRequest struct {
	AccountID    string          `json:"account_id" validate:"required,max=64"`
	Description  string          `json:"description,omitempty"`
	CostCenterID *string         `json:"cost_center_id,omitempty"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest represents a generic journal entry request
// with caller-assembled lines.
type CreateJournalEntryRequest struct {
	CompanyID     string               `json:"company_id" validate:"required,max=64"`
	BranchID      *string              `json:"branch_id,omitempty"`
	Description   string               `json:"description,omitempty"`
	ReferenceType string               `json:"reference_type" validate:"required"`
	ReferenceID   string               `json:"reference_id" validate:"required,max=64"`
	EntryDate     *time.Time           `json:"entry_date,omitempty"`
	Lines         []JournalLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// Validate checks structural constraints.
func (r *CreateJournalEntryRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *CreateJournalEntryRequest) ToUseCaseInput() usecase.CreateJournalEntryInput {
	lines := make([]usecase.JournalLineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = usecase.JournalLineInput{
			AccountID:    l.AccountID,
			Description:  l.Description,
			CostCenterID: l.CostCenterID,
			Debit:        l.Debit,
			Credit:       l.Credit,
		}
	}

	return usecase.CreateJournalEntryInput{
		CompanyID:     r.CompanyID,
		BranchID:      r.BranchID,
		Description:   r.Description,
		ReferenceType: domain.ReferenceType(r.ReferenceType),
		ReferenceID:   r.ReferenceID,
		EntryDate:     timeOrZero(r.EntryDate),
		Lines:         lines,
	}
}

// SetChartAccountRequest represents a chart mapping override.
type SetChartAccountRequest struct {
	AccountID string `json:"account_id" validate:"required,max=64"`
}

// Validate checks structural constraints.
func (r *SetChartAccountRequest) Validate() error {
	return validate.Struct(r)
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}

	return *t
}
