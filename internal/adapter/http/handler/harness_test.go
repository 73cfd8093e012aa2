package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gojournal/internal/adapter/http/handler"
	"github.com/iho/gojournal/internal/usecase"
	"github.com/iho/gojournal/internal/usecase/mocks"
)

// harness wires real use cases over in-memory mocks behind a chi router,
// so handler tests exercise routing, decoding, and error mapping.
type harness struct {
	router      chi.Router
	journalRepo *mocks.MockJournalRepository
	chartRepo   *mocks.MockChartRepository
	idemRepo    *mocks.MockIdempotencyRepository
}

func newHarness() *harness {
	h := &harness{
		journalRepo: mocks.NewMockJournalRepository(),
		chartRepo:   mocks.NewMockChartRepository(),
		idemRepo:    mocks.NewMockIdempotencyRepository(),
	}

	idempotencyUC := usecase.NewIdempotencyUseCase(h.idemRepo, time.Hour)
	chartUC := usecase.NewChartUseCase(h.chartRepo, nil, 0)
	journalUC := usecase.NewJournalUseCase(
		mocks.NewMockTransactionManager(),
		h.journalRepo,
		mocks.NewMockSequenceRepository(),
		mocks.NewMockOutboxRepository(),
		idempotencyUC,
		mocks.NewMockIDGenerator("id"),
		&mocks.NopRetrier{},
		nil,
	)
	postingUC := usecase.NewPostingUseCase(journalUC, chartUC)

	postingHandler := handler.NewPostingHandler(postingUC)
	journalHandler := handler.NewJournalHandler(journalUC)
	adminHandler := handler.NewAdminHandler(idempotencyUC, chartUC)

	r := chi.NewRouter()
	r.Route("/postings", func(r chi.Router) {
		r.Post("/sales-invoice", postingHandler.SalesInvoice)
		r.Post("/purchase-invoice", postingHandler.PurchaseInvoice)
		r.Post("/sales-return", postingHandler.SalesReturn)
		r.Post("/purchase-return", postingHandler.PurchaseReturn)
		r.Post("/receipt", postingHandler.Receipt)
		r.Post("/payment", postingHandler.Payment)
		r.Post("/stock-adjustment", postingHandler.StockAdjustment)
		r.Post("/stock-transfer", postingHandler.StockTransfer)
	})
	r.Route("/journal-entries", func(r chi.Router) {
		r.Post("/", journalHandler.Create)
		r.Get("/", journalHandler.List)
		r.Get("/by-reference", journalHandler.GetByReference)
		r.Get("/{id}", journalHandler.Get)
	})
	r.Route("/admin", func(r chi.Router) {
		r.Post("/idempotency/cleanup", adminHandler.CleanupIdempotency)
		r.Get("/companies/{companyID}/accounts", adminHandler.GetChart)
		r.Put("/companies/{companyID}/accounts/{role}", adminHandler.SetChartAccount)
	})

	h.router = r
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, r)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
