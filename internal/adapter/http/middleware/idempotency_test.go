package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iho/gojournal/internal/adapter/http/middleware"
	"github.com/iho/gojournal/internal/usecase"
	"github.com/iho/gojournal/internal/usecase/mocks"
)

func newIdempotencyHandler(t *testing.T) (http.Handler, *int) {
	t.Helper()

	repo := mocks.NewMockIdempotencyRepository()
	uc := usecase.NewIdempotencyUseCase(repo, time.Hour)

	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"call":%d}`, calls)
	})

	return middleware.NewIdempotencyMiddleware(uc).Wrap(inner), &calls
}

func TestIdempotencyMiddlewareReplaysResponse(t *testing.T) {
	handler, calls := newIdempotencyHandler(t)

	first := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodPost, "/api/v1/postings/receipt", strings.NewReader("{}"))
	r1.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	handler.ServeHTTP(first, r1)

	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodPost, "/api/v1/postings/receipt", strings.NewReader("{}"))
	r2.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	handler.ServeHTTP(second, r2)

	if second.Code != http.StatusCreated {
		t.Fatalf("replay must carry the stored status, got %d", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay marker header")
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replay body mismatch: %s vs %s", second.Body.String(), first.Body.String())
	}
	if *calls != 1 {
		t.Fatalf("handler must run once, ran %d times", *calls)
	}
}

func TestIdempotencyMiddlewareKeysIncludePath(t *testing.T) {
	handler, calls := newIdempotencyHandler(t)

	r1 := httptest.NewRequest(http.MethodPost, "/api/v1/postings/receipt", strings.NewReader("{}"))
	r1.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), r1)

	r2 := httptest.NewRequest(http.MethodPost, "/api/v1/postings/payment", strings.NewReader("{}"))
	r2.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), r2)

	if *calls != 2 {
		t.Fatalf("same key on different paths must not collide, got %d calls", *calls)
	}
}

func TestIdempotencyMiddlewarePassesThroughWithoutHeader(t *testing.T) {
	handler, calls := newIdempotencyHandler(t)

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/postings/receipt", strings.NewReader("{}"))
		handler.ServeHTTP(httptest.NewRecorder(), r)
	}

	if *calls != 2 {
		t.Fatalf("requests without the header must not be deduplicated, got %d calls", *calls)
	}
}

func TestIdempotencyMiddlewareIgnoresReads(t *testing.T) {
	handler, calls := newIdempotencyHandler(t)

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/journal-entries/abc", nil)
		r.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
		handler.ServeHTTP(httptest.NewRecorder(), r)
	}

	if *calls != 2 {
		t.Fatalf("GET requests must bypass the idempotency layer, got %d calls", *calls)
	}
}

func TestIdempotencyMiddlewareSkipsFailedResponses(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository()
	uc := usecase.NewIdempotencyUseCase(repo, time.Hour)

	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	})
	handler := middleware.NewIdempotencyMiddleware(uc).Wrap(inner)

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/postings/receipt", strings.NewReader("{}"))
		r.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
		handler.ServeHTTP(httptest.NewRecorder(), r)
	}

	if calls != 2 {
		t.Fatalf("failed responses must not be replayed, got %d calls", calls)
	}
}
