package handler_test

import (
	"net/http"
	"testing"

	"github.com/iho/gojournal/internal/adapter/http/dto"
)

func journalEntryBody(refID string) map[string]any {
	return map[string]any{
		"company_id":     "comp-1",
		"description":    "manual posting",
		"reference_type": "sales_invoice",
		"reference_id":   refID,
		"lines": []map[string]any{
			{"account_id": "1130", "debit": "115", "credit": "0"},
			{"account_id": "4100", "debit": "0", "credit": "100"},
			{"account_id": "2130", "debit": "0", "credit": "15"},
		},
	}
}

func TestCreateJournalEntryEndpoint(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodPost, "/journal-entries/", journalEntryBody("inv-1"))
	requireStatus(t, w, http.StatusCreated)

	resp := decodeBody[dto.PostResponse](t, w)
	if resp.EntryNumber == "" {
		t.Fatal("expected an entry number")
	}
}

func TestCreateJournalEntryRejectsUnbalanced(t *testing.T) {
	h := newHarness()

	body := journalEntryBody("inv-1")
	body["lines"] = []map[string]any{
		{"account_id": "1130", "debit": "200", "credit": "0"},
		{"account_id": "4100", "debit": "0", "credit": "100"},
	}

	w := h.do(t, http.MethodPost, "/journal-entries/", body)
	requireStatus(t, w, http.StatusBadRequest)

	if h.journalRepo.Count() != 0 {
		t.Fatal("unbalanced entry must not be stored")
	}
}

func TestCreateJournalEntryRejectsEmptyLines(t *testing.T) {
	h := newHarness()

	body := journalEntryBody("inv-1")
	body["lines"] = []map[string]any{}

	w := h.do(t, http.MethodPost, "/journal-entries/", body)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestGetJournalEntryEndpoint(t *testing.T) {
	h := newHarness()

	created := h.do(t, http.MethodPost, "/journal-entries/", journalEntryBody("inv-1"))
	requireStatus(t, created, http.StatusCreated)
	id := decodeBody[dto.PostResponse](t, created).JournalEntryID

	w := h.do(t, http.MethodGet, "/journal-entries/"+id, nil)
	requireStatus(t, w, http.StatusOK)

	entry := decodeBody[dto.JournalEntryResponse](t, w)
	if entry.ID != id || len(entry.Lines) != 3 {
		t.Fatalf("unexpected entry payload: %#v", entry)
	}
}

func TestGetJournalEntryNotFound(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodGet, "/journal-entries/missing", nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestGetByReferenceEndpoint(t *testing.T) {
	h := newHarness()

	created := h.do(t, http.MethodPost, "/journal-entries/", journalEntryBody("inv-1"))
	requireStatus(t, created, http.StatusCreated)

	w := h.do(t, http.MethodGet, "/journal-entries/by-reference?company_id=comp-1&reference_type=sales_invoice&reference_id=inv-1", nil)
	requireStatus(t, w, http.StatusOK)

	entry := decodeBody[dto.JournalEntryResponse](t, w)
	if entry.ReferenceID != "inv-1" {
		t.Fatalf("unexpected reference id %s", entry.ReferenceID)
	}

	missing := h.do(t, http.MethodGet, "/journal-entries/by-reference?company_id=comp-1&reference_type=sales_invoice&reference_id=other", nil)
	requireStatus(t, missing, http.StatusNotFound)
}

func TestGetByReferenceRequiresParams(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodGet, "/journal-entries/by-reference?company_id=comp-1", nil)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestListJournalEntriesEndpoint(t *testing.T) {
	h := newHarness()

	requireStatus(t, h.do(t, http.MethodPost, "/journal-entries/", journalEntryBody("inv-1")), http.StatusCreated)
	requireStatus(t, h.do(t, http.MethodPost, "/journal-entries/", journalEntryBody("inv-2")), http.StatusCreated)

	w := h.do(t, http.MethodGet, "/journal-entries/?company_id=comp-1", nil)
	requireStatus(t, w, http.StatusOK)

	entries := decodeBody[[]dto.JournalEntryResponse](t, w)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	missingCompany := h.do(t, http.MethodGet, "/journal-entries/", nil)
	requireStatus(t, missingCompany, http.StatusBadRequest)
}
