package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
)

// PostingUseCase maps business events to journal line sets and hands
// them to the generic creator. Builders are pure: all amounts and
// account choices are decided before any write.
type PostingUseCase struct {
	journal *JournalUseCase
	chart   *ChartUseCase
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(journal *JournalUseCase, chart *ChartUseCase) *PostingUseCase {
	return &PostingUseCase{
		journal: journal,
		chart:   chart,
	}
}

// InvoiceInput carries the shared shape of invoice-like events.
type InvoiceInput struct {
	EntryDate    time.Time
	CompanyID    string
	BranchID     *string
	DocumentID   string
	PartyAccount string // customer or supplier account; role default when empty
	CostCenterID *string
	Subtotal     decimal.Decimal
	VATAmount    decimal.Decimal
	Total        decimal.Decimal
	VATEnabled   bool
}

// PostSalesInvoice posts: Dr customer = total / Cr revenue = subtotal,
// plus Cr VAT payable when VAT is enabled and positive.
func (uc *PostingUseCase) PostSalesInvoice(ctx context.Context, input InvoiceInput) (*PostResult, error) {
	chart, err := uc.chart.ResolveAccounts(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	customer, err := accountOr(chart, domain.RoleCustomers, input.PartyAccount)
	if err != nil {
		return nil, err
	}

	revenue, err := chart.Resolve(domain.RoleSalesRevenue)
	if err != nil {
		return nil, err
	}

	lines := []JournalLineInput{
		{AccountID: customer, Debit: input.Total, CostCenterID: input.CostCenterID},
		{AccountID: revenue, Credit: input.Subtotal, CostCenterID: input.CostCenterID},
	}

	if input.VATEnabled && input.VATAmount.IsPositive() {
		vat, err := chart.Resolve(domain.RoleVATPayable)
		if err != nil {
			return nil, err
		}

		lines = append(lines, JournalLineInput{AccountID: vat, Credit: input.VATAmount})
	}

	return uc.journal.CreateJournalEntry(ctx, CreateJournalEntryInput{
		CompanyID:     input.CompanyID,
		BranchID:      input.BranchID,
		EntryDate:     input.EntryDate,
		Description:   fmt.Sprintf("Sales invoice %s", input.DocumentID),
		ReferenceType: domain.ReferenceSalesInvoice,
		ReferenceID:   input.DocumentID,
		Lines:         lines,
	})
}

// PostPurchaseInvoice posts: Dr inventory = subtotal (plus Dr VAT when
// enabled) / Cr supplier = total.
func (uc *PostingUseCase) PostPurchaseInvoice(ctx context.Context, input InvoiceInput) (*PostResult, error) {
	chart, err := uc.chart.ResolveAccounts(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	supplier, err := accountOr(chart, domain.RoleSuppliers, input.PartyAccount)
	if err != nil {
		return nil, err
	}

	inventory, err := chart.Resolve(domain.RoleInventory)
	if err != nil {
		return nil, err
	}

	lines := []JournalLineInput{
		{AccountID: inventory, Debit: input.Subtotal, CostCenterID: input.CostCenterID},
	}

	if input.VATEnabled && input.VATAmount.IsPositive() {
		vat, err := chart.Resolve(domain.RoleVATPayable)
		if err != nil {
			return nil, err
		}

		lines = append(lines, JournalLineInput{AccountID: vat, Debit: input.VATAmount})
	}

	lines = append(lines, JournalLineInput{AccountID: supplier, Credit: input.Total, CostCenterID: input.CostCenterID})

	return uc.journal.CreateJournalEntry(ctx, CreateJournalEntryInput{
		CompanyID:     input.CompanyID,
		BranchID:      input.BranchID,
		EntryDate:     input.EntryDate,
		Description:   fmt.Sprintf("Purchase invoice %s", input.DocumentID),
		ReferenceType: domain.ReferencePurchaseInvoice,
		ReferenceID:   input.DocumentID,
		Lines:         lines,
	})
}

// PostSalesReturn reverses a sale against the sales-returns account:
// Dr returns = subtotal (plus Dr VAT) / Cr customer = total.
func (uc *PostingUseCase) PostSalesReturn(ctx context.Context, input InvoiceInput) (*PostResult, error) {
	chart, err := uc.chart.ResolveAccounts(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	customer, err := accountOr(chart, domain.RoleCustomers, input.PartyAccount)
	if err != nil {
		return nil, err
	}

	returns, err := chart.Resolve(domain.RoleSalesReturns)
	if err != nil {
		return nil, err
	}

	lines := []JournalLineInput{
		{AccountID: returns, Debit: input.Subtotal, CostCenterID: input.CostCenterID},
	}

	if input.VATEnabled && input.VATAmount.IsPositive() {
		vat, err := chart.Resolve(domain.RoleVATPayable)
		if err != nil {
			return nil, err
		}

		lines = append(lines, JournalLineInput{AccountID: vat, Debit: input.VATAmount})
	}

	lines = append(lines, JournalLineInput{AccountID: customer, Credit: input.Total, CostCenterID: input.CostCenterID})

	return uc.journal.CreateJournalEntry(ctx, CreateJournalEntryInput{
		CompanyID:     input.CompanyID,
		BranchID:      input.BranchID,
		EntryDate:     input.EntryDate,
		Description:   fmt.Sprintf("Sales return %s", input.DocumentID),
		ReferenceType: domain.ReferenceSalesReturn,
		ReferenceID:   input.DocumentID,
		Lines:         lines,
	})
}

// PostPurchaseReturn reverses a purchase: Dr supplier = total /
// Cr inventory = subtotal (plus Cr VAT when enabled).
func (uc *PostingUseCase) PostPurchaseReturn(ctx context.Context, input InvoiceInput) (*PostResult, error) {
	chart, err := uc.chart.ResolveAccounts(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	supplier, err := accountOr(chart, domain.RoleSuppliers, input.PartyAccount)
	if err != nil {
		return nil, err
	}

	returns, err := chart.Resolve(domain.RolePurchaseReturns)
	if err != nil {
		return nil, err
	}

	lines := []JournalLineInput{
		{AccountID: supplier, Debit: input.Total, CostCenterID: input.CostCenterID},
		{AccountID: returns, Credit: input.Subtotal, CostCenterID: input.CostCenterID},
	}

	if input.VATEnabled && input.VATAmount.IsPositive() {
		vat, err := chart.Resolve(domain.RoleVATPayable)
		if err != nil {
			return nil, err
		}

		lines = append(lines, JournalLineInput{AccountID: vat, Credit: input.VATAmount})
	}

	return uc.journal.CreateJournalEntry(ctx, CreateJournalEntryInput{
		CompanyID:     input.CompanyID,
		BranchID:      input.BranchID,
		EntryDate:     input.EntryDate,
		Description:   fmt.Sprintf("Purchase return %s", input.DocumentID),
		ReferenceType: domain.ReferencePurchaseReturn,
		ReferenceID:   input.DocumentID,
		Lines:         lines,
	})
}

// CashMovementInput carries receipt and payment events. Exactly one of
// VaultAccountID or BankAccountID must be set; the first non-empty one
// wins.
type CashMovementInput struct {
	EntryDate      time.Time
	CompanyID      string
	BranchID       *string
	DocumentID     string
	PartyAccount   string // customer (receipt) or supplier (payment)
	VaultAccountID *string
	BankAccountID  *string
	CostCenterID   *string
	Amount         decimal.Decimal
}

func (input *CashMovementInput) cashAccount() (string, error) {
	if input.VaultAccountID != nil && *input.VaultAccountID != "" {
		return *input.VaultAccountID, nil
	}

	if input.BankAccountID != nil && *input.BankAccountID != "" {
		return *input.BankAccountID, nil
	}

	return "", domain.ErrCashAccountRequired
}

// PostReceipt posts cash or bank money in: Dr cash-or-bank / Cr customer.
func (uc *PostingUseCase) PostReceipt(ctx context.Context, input CashMovementInput) (*PostResult, error) {
	chart, err := uc.chart.ResolveAccounts(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	cash, err := input.cashAccount()
	if err != nil {
		return nil, err
	}

	customer, err := accountOr(chart, domain.RoleCustomers, input.PartyAccount)
	if err != nil {
		return nil, err
	}

	return uc.journal.CreateJournalEntry(ctx, CreateJournalEntryInput{
		CompanyID:     input.CompanyID,
		BranchID:      input.BranchID,
		EntryDate:     input.EntryDate,
		Description:   fmt.Sprintf("Receipt %s", input.DocumentID),
		ReferenceType: domain.ReferenceReceipt,
		ReferenceID:   input.DocumentID,
		Lines: []JournalLineInput{
			{AccountID: cash, Debit: input.Amount, CostCenterID: input.CostCenterID},
			{AccountID: customer, Credit: input.Amount, CostCenterID: input.CostCenterID},
		},
	})
}

// PostPayment posts cash or bank money out: Dr supplier / Cr cash-or-bank.
func (uc *PostingUseCase) PostPayment(ctx context.Context, input CashMovementInput) (*PostResult, error) {
	chart, err := uc.chart.ResolveAccounts(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	cash, err := input.cashAccount()
	if err != nil {
		return nil, err
	}

	supplier, err := accountOr(chart, domain.RoleSuppliers, input.PartyAccount)
	if err != nil {
		return nil, err
	}

	return uc.journal.CreateJournalEntry(ctx, CreateJournalEntryInput{
		CompanyID:     input.CompanyID,
		BranchID:      input.BranchID,
		EntryDate:     input.EntryDate,
		Description:   fmt.Sprintf("Payment %s", input.DocumentID),
		ReferenceType: domain.ReferencePayment,
		ReferenceID:   input.DocumentID,
		Lines: []JournalLineInput{
			{AccountID: supplier, Debit: input.Amount, CostCenterID: input.CostCenterID},
			{AccountID: cash, Credit: input.Amount, CostCenterID: input.CostCenterID},
		},
	})
}

// AdjustmentDirection states whether a stock adjustment increases or
// decreases inventory value.
type AdjustmentDirection string

const (
	AdjustmentIncrease AdjustmentDirection = "increase"
	AdjustmentDecrease AdjustmentDirection = "decrease"
)

// StockAdjustmentInput carries stock revaluation events.
type StockAdjustmentInput struct {
	EntryDate    time.Time
	CompanyID    string
	BranchID     *string
	DocumentID   string
	Direction    AdjustmentDirection
	CostCenterID *string
	Amount       decimal.Decimal
}

// PostStockAdjustment posts an inventory value correction against COGS.
func (uc *PostingUseCase) PostStockAdjustment(ctx context.Context, input StockAdjustmentInput) (*PostResult, error) {
	chart, err := uc.chart.ResolveAccounts(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	inventory, err := chart.Resolve(domain.RoleInventory)
	if err != nil {
		return nil, err
	}

	cogs, err := chart.Resolve(domain.RoleCOGS)
	if err != nil {
		return nil, err
	}

	var lines []JournalLineInput
	switch input.Direction {
	case AdjustmentIncrease:
		lines = []JournalLineInput{
			{AccountID: inventory, Debit: input.Amount, CostCenterID: input.CostCenterID},
			{AccountID: cogs, Credit: input.Amount, CostCenterID: input.CostCenterID},
		}
	case AdjustmentDecrease:
		lines = []JournalLineInput{
			{AccountID: cogs, Debit: input.Amount, CostCenterID: input.CostCenterID},
			{AccountID: inventory, Credit: input.Amount, CostCenterID: input.CostCenterID},
		}
	default:
		return nil, fmt.Errorf("%w: unknown adjustment direction %q", domain.ErrInvalidReferenceType, input.Direction)
	}

	return uc.journal.CreateJournalEntry(ctx, CreateJournalEntryInput{
		CompanyID:     input.CompanyID,
		BranchID:      input.BranchID,
		EntryDate:     input.EntryDate,
		Description:   fmt.Sprintf("Stock adjustment %s", input.DocumentID),
		ReferenceType: domain.ReferenceStockAdjustment,
		ReferenceID:   input.DocumentID,
		Lines:         lines,
	})
}

// StockTransferInput carries inventory movements between locations.
type StockTransferInput struct {
	EntryDate     time.Time
	CompanyID     string
	BranchID      *string
	DocumentID    string
	FromAccountID string
	ToAccountID   string
	CostCenterID  *string
	Amount        decimal.Decimal
}

// PostStockTransfer posts: Dr destination inventory / Cr source
// inventory. Either side defaults to the inventory role account.
func (uc *PostingUseCase) PostStockTransfer(ctx context.Context, input StockTransferInput) (*PostResult, error) {
	chart, err := uc.chart.ResolveAccounts(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	from, err := accountOr(chart, domain.RoleInventory, input.FromAccountID)
	if err != nil {
		return nil, err
	}

	to, err := accountOr(chart, domain.RoleInventory, input.ToAccountID)
	if err != nil {
		return nil, err
	}

	return uc.journal.CreateJournalEntry(ctx, CreateJournalEntryInput{
		CompanyID:     input.CompanyID,
		BranchID:      input.BranchID,
		EntryDate:     input.EntryDate,
		Description:   fmt.Sprintf("Stock transfer %s", input.DocumentID),
		ReferenceType: domain.ReferenceStockTransfer,
		ReferenceID:   input.DocumentID,
		Lines: []JournalLineInput{
			{AccountID: to, Debit: input.Amount, CostCenterID: input.CostCenterID},
			{AccountID: from, Credit: input.Amount, CostCenterID: input.CostCenterID},
		},
	})
}

// accountOr prefers the caller-supplied account and falls back to the
// company's mapping for the role.
func accountOr(chart *domain.ChartMapping, role domain.AccountRole, account string) (string, error) {
	if account != "" {
		return account, nil
	}

	return chart.Resolve(role)
}
