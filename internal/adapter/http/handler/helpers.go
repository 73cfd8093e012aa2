package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps a domain error to an HTTP response.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, mapDomainError(err), "posting failed", err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var unbalanced *domain.UnbalancedEntryError
	if errors.As(err, &unbalanced) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPostingInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoLines),
		errors.Is(err, domain.ErrEmptyLine),
		errors.Is(err, domain.ErrTwoSidedLine),
		errors.Is(err, domain.ErrAccountRequired),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrCompanyRequired),
		errors.Is(err, domain.ErrReferenceRequired),
		errors.Is(err, domain.ErrInvalidReferenceType),
		errors.Is(err, domain.ErrCashAccountRequired),
		errors.Is(err, domain.ErrUnknownAccountRole),
		errors.Is(err, domain.ErrInvalidDescription),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrTooManyLines),
		errors.Is(err, domain.ErrInvalidIDFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
