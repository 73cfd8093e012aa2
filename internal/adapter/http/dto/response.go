package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// PostResponse represents a posting outcome in API responses.
type PostResponse struct {
	JournalEntryID string          `json:"journal_entry_id"`
	EntryNumber    string          `json:"entry_number"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
}

// PostResponseFromResult converts a posting result to a response.
func PostResponseFromResult(r *usecase.PostResult) *PostResponse {
	return &PostResponse{
		JournalEntryID: r.JournalEntryID,
		EntryNumber:    r.EntryNumber,
		TotalDebit:     r.TotalDebit,
		TotalCredit:    r.TotalCredit,
	}
}

// JournalEntryResponse represents a journal entry in API responses.
type JournalEntryResponse struct {
	ID            string                `json:"id"`
	CompanyID     string                `json:"company_id"`
	BranchID      *string               `json:"branch_id,omitempty"`
	EntryNumber   string                `json:"entry_number"`
	EntryDate     time.Time             `json:"entry_date"`
	Description   string                `json:"description"`
	ReferenceType string                `json:"reference_type"`
	ReferenceID   string                `json:"reference_id"`
	TotalDebit    decimal.Decimal       `json:"total_debit"`
	TotalCredit   decimal.Decimal       `json:"total_credit"`
	Status        string                `json:"status"`
	Lines         []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// JournalLineResponse represents a journal entry line in API responses.
type JournalLineResponse struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Description  string          `json:"description,omitempty"`
	CostCenterID *string         `json:"cost_center_id,omitempty"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
}

// JournalEntryFromDomain converts a domain entry to a response.
func JournalEntryFromDomain(e *domain.JournalEntry) *JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			ID:           l.ID,
			AccountID:    l.AccountID,
			Description:  l.Description,
			CostCenterID: l.CostCenterID,
			Debit:        l.Debit,
			Credit:       l.Credit,
		}
	}

	return &JournalEntryResponse{
		ID:            e.ID,
		CompanyID:     e.CompanyID,
		BranchID:      e.BranchID,
		EntryNumber:   e.EntryNumber,
		EntryDate:     e.EntryDate,
		Description:   e.Description,
		ReferenceType: string(e.ReferenceType),
		ReferenceID:   e.ReferenceID,
		TotalDebit:    e.TotalDebit,
		TotalCredit:   e.TotalCredit,
		Status:        string(e.Status),
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
	}
}

// JournalEntriesFromDomain converts domain entries to responses.
func JournalEntriesFromDomain(entries []*domain.JournalEntry) []*JournalEntryResponse {
	result := make([]*JournalEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = JournalEntryFromDomain(e)
	}
	return result
}

// ChartResponse represents a company's role-to-account mapping.
type ChartResponse struct {
	CompanyID string            `json:"company_id"`
	Accounts  map[string]string `json:"accounts"`
}

// ChartFromDomain converts a chart mapping to a response with every
// role resolved, defaults included.
func ChartFromDomain(m *domain.ChartMapping) *ChartResponse {
	roles := domain.AccountRoles()

	accounts := make(map[string]string, len(roles))
	for _, role := range roles {
		if account, err := m.Resolve(role); err == nil {
			accounts[string(role)] = account
		}
	}

	return &ChartResponse{
		CompanyID: m.CompanyID,
		Accounts:  accounts,
	}
}

// CleanupResponse reports a sweep outcome.
type CleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
