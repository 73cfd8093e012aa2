package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// AdminHandler handles maintenance and configuration requests.
type AdminHandler struct {
	idempotencyUC *usecase.IdempotencyUseCase
	chartUC       *usecase.ChartUseCase
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(idempotencyUC *usecase.IdempotencyUseCase, chartUC *usecase.ChartUseCase) *AdminHandler {
	return &AdminHandler{
		idempotencyUC: idempotencyUC,
		chartUC:       chartUC,
	}
}

// CleanupIdempotency deletes expired idempotency records.
func (h *AdminHandler) CleanupIdempotency(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.idempotencyUC.CleanupExpired(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cleanup failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CleanupResponse{Deleted: deleted})
}

// GetChart returns a company's resolved role-to-account mapping,
// defaults included.
func (h *AdminHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "missing company ID", "")
		return
	}

	mapping, err := h.chartUC.ResolveAccounts(r.Context(), companyID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ChartFromDomain(mapping))
}

// SetChartAccount overrides one role mapping for a company.
func (h *AdminHandler) SetChartAccount(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	role := chi.URLParam(r, "role")

	if companyID == "" || role == "" {
		writeError(w, http.StatusBadRequest, "missing company ID or role", "")
		return
	}

	var req dto.SetChartAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	err := h.chartUC.SetAccount(r.Context(), usecase.SetAccountInput{
		CompanyID: companyID,
		Role:      domain.AccountRole(role),
		AccountID: req.AccountID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
