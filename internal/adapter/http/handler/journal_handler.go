package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// JournalHandler handles journal entry HTTP requests.
type JournalHandler struct {
	journalUC *usecase.JournalUseCase
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC *usecase.JournalUseCase) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// Create posts a caller-assembled journal entry.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateJournalEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.journalUC.CreateJournalEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writePostResult(w, result)
}

// Get retrieves a journal entry with its lines.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.journalUC.GetJournalEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntryFromDomain(entry))
}

// GetByReference retrieves the entry posted for a business document.
func (h *JournalHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	refType := r.URL.Query().Get("reference_type")
	refID := r.URL.Query().Get("reference_id")

	if companyID == "" || refType == "" || refID == "" {
		writeError(w, http.StatusBadRequest, "company_id, reference_type and reference_id are required", "")
		return
	}

	entry, err := h.journalUC.GetByReference(r.Context(), companyID, domain.ReferenceType(refType), refID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntryFromDomain(entry))
}

// List lists entries for a company, newest first.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "company_id is required", "")
		return
	}

	entries, err := h.journalUC.ListJournalEntries(r.Context(), usecase.ListJournalEntriesInput{
		CompanyID: companyID,
		Limit:     parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntriesFromDomain(entries))
}
