package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/iho/gojournal/internal/infrastructure/metrics"
)

// Cleaner deletes expired idempotency records and reports how many went.
type Cleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// Sweeper periodically purges expired idempotency records so the keys
// table stays bounded. Expired records that have not been swept yet are
// still valid for replay; the sweep only reclaims space.
type Sweeper struct {
	cleaner  Cleaner
	logger   *slog.Logger
	metrics  *metrics.Metrics
	interval time.Duration
}

// Config for Sweeper.
type Config struct {
	Cleaner  Cleaner
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Interval time.Duration
}

// New creates a new Sweeper.
func New(cfg Config) *Sweeper {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Sweeper{
		cleaner:  cfg.Cleaner,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		interval: cfg.Interval,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("idempotency sweeper started",
		slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("idempotency sweeper shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	deleted, err := s.cleaner.CleanupExpired(ctx)
	if err != nil {
		s.logger.Error("idempotency sweep failed", slog.String("error", err.Error()))
		return
	}

	if deleted > 0 {
		s.logger.Info("idempotency records swept", slog.Int64("deleted", deleted))

		if s.metrics != nil {
			s.metrics.KeysSwept.Add(float64(deleted))
		}
	}
}
