package middleware

import (
	"bytes"
	"net/http"

	"github.com/iho/gojournal/internal/usecase"
)

// IdempotencyKeyHeader is the header name for caller-supplied
// idempotency keys.
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyMiddleware replays stored responses for repeated requests
// carrying the same Idempotency-Key header. Posting operations derive
// their own keys from business identifiers; this layer only covers
// callers that opt in at the transport level.
type IdempotencyMiddleware struct {
	idempotencyUC *usecase.IdempotencyUseCase
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(idempotencyUC *usecase.IdempotencyUseCase) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{idempotencyUC: idempotencyUC}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(IdempotencyKeyHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		key := usecase.DeriveKey("http", r.Method, r.URL.Path, header)

		record, err := m.idempotencyUC.Check(r.Context(), key)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if record != nil && record.Completed() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Replay", "true")
			w.WriteHeader(record.StatusCode)
			w.Write(record.ResponseBody)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			m.idempotencyUC.SaveResult(r.Context(), key, recorder.body.Bytes(), recorder.statusCode)
		}
	})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
