package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gojournal/internal/adapter/http/handler"
	"github.com/iho/gojournal/internal/adapter/http/middleware"
	"github.com/iho/gojournal/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PostingHandler *handler.PostingHandler
	JournalHandler *handler.JournalHandler
	AdminHandler   *handler.AdminHandler
	HealthHandler  *handler.HealthHandler
	IdempotencyUC  *usecase.IdempotencyUseCase
	Logger         zerolog.Logger
	RateLimiter    *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Transport-level idempotency for callers sending the header
		if cfg.IdempotencyUC != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyUC)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Typed postings
		r.Route("/postings", func(r chi.Router) {
			r.Post("/sales-invoice", cfg.PostingHandler.SalesInvoice)
			r.Post("/purchase-invoice", cfg.PostingHandler.PurchaseInvoice)
			r.Post("/sales-return", cfg.PostingHandler.SalesReturn)
			r.Post("/purchase-return", cfg.PostingHandler.PurchaseReturn)
			r.Post("/receipt", cfg.PostingHandler.Receipt)
			r.Post("/payment", cfg.PostingHandler.Payment)
			r.Post("/stock-adjustment", cfg.PostingHandler.StockAdjustment)
			r.Post("/stock-transfer", cfg.PostingHandler.StockTransfer)
		})

		// Journal entries
		r.Route("/journal-entries", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.Create)
			r.Get("/", cfg.JournalHandler.List)
			r.Get("/by-reference", cfg.JournalHandler.GetByReference)
			r.Get("/{id}", cfg.JournalHandler.Get)
		})

		// Maintenance and configuration
		r.Route("/admin", func(r chi.Router) {
			r.Post("/idempotency/cleanup", cfg.AdminHandler.CleanupIdempotency)
			r.Get("/companies/{companyID}/accounts", cfg.AdminHandler.GetChart)
			r.Put("/companies/{companyID}/accounts/{role}", cfg.AdminHandler.SetChartAccount)
		})
	})

	return r
}
