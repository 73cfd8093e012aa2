package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency records are kept before
	// the sweep may purge them.
	IdempotencyKeyTTL = 24 * time.Hour

	// ChartCacheTTL is how long a company's resolved chart mapping is
	// cached before it is re-read from the store.
	ChartCacheTTL = 5 * time.Minute

	// DefaultPageSize and MaxPageSize bound listing queries.
	DefaultPageSize = 20
	MaxPageSize     = 100
)
