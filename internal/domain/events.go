package domain

import "time"

// Event types
const (
	EventTypeJournalPosted = "journal_entry.posted"
)

// Aggregate types
const (
	AggregateTypeJournalEntry = "journal_entry"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// JournalPostedEvent payload
type JournalPostedEvent struct {
	JournalEntryID string `json:"journal_entry_id"`
	CompanyID      string `json:"company_id"`
	EntryNumber    string `json:"entry_number"`
	ReferenceType  string `json:"reference_type"`
	ReferenceID    string `json:"reference_id"`
	TotalDebit     string `json:"total_debit"`
	TotalCredit    string `json:"total_credit"`
	EntryDate      string `json:"entry_date"`
}
