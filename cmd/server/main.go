package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gojournal/internal/adapter/http"
	"github.com/iho/gojournal/internal/adapter/http/handler"
	"github.com/iho/gojournal/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/gojournal/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gojournal/internal/adapter/repository/redis"
	"github.com/iho/gojournal/internal/infrastructure/config"
	"github.com/iho/gojournal/internal/infrastructure/eventpublisher"
	"github.com/iho/gojournal/internal/infrastructure/logger"
	"github.com/iho/gojournal/internal/infrastructure/metrics"
	"github.com/iho/gojournal/internal/infrastructure/postgres"
	"github.com/iho/gojournal/internal/infrastructure/redis"
	"github.com/iho/gojournal/internal/infrastructure/sweeper"
	"github.com/iho/gojournal/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics registry
	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	sequenceRepo := postgresRepo.NewSequenceRepository(pool)
	chartRepo := postgresRepo.NewChartRepository(pool)
	idempotencyRepo := postgresRepo.NewIdempotencyRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize use cases
	idempotencyUC := usecase.NewIdempotencyUseCase(idempotencyRepo, cfg.IdempotencyTTL)
	chartUC := usecase.NewChartUseCase(chartRepo, cache, cfg.ChartCacheTTL)
	journalUC := usecase.NewJournalUseCase(txManager, journalRepo, sequenceRepo, outboxRepo, idempotencyUC, idGen, retrier, m)
	postingUC := usecase.NewPostingUseCase(journalUC, chartUC)

	// Initialize handlers
	postingHandler := handler.NewPostingHandler(postingUC)
	journalHandler := handler.NewJournalHandler(journalUC)
	adminHandler := handler.NewAdminHandler(idempotencyUC, chartUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PostingHandler: postingHandler,
		JournalHandler: journalHandler,
		AdminHandler:   adminHandler,
		HealthHandler:  healthHandler,
		IdempotencyUC:  idempotencyUC,
		Logger:         appLogger,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	})

	// Background workers
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(slog.Default()),
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go func() {
		if err := publisher.Start(workerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	keySweeper := sweeper.New(sweeper.Config{
		Cleaner:  idempotencyUC,
		Metrics:  m,
		Interval: cfg.IdempotencySweepInterval,
	})
	go func() {
		if err := keySweeper.Start(workerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("idempotency sweeper stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
