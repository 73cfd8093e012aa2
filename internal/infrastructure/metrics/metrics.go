package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	PostingsCreated  *prometheus.CounterVec
	PostingsRejected *prometheus.CounterVec
	PostingDuration  prometheus.Histogram

	// Idempotency metrics
	IdempotentReplays    prometheus.Counter
	IdempotencyConflicts prometheus.Counter
	KeysSwept            prometheus.Counter

	// Outbox metrics
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		PostingsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gojournal_postings_created_total",
				Help: "Total number of journal entries posted by reference type",
			},
			[]string{"reference_type"},
		),
		PostingsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gojournal_postings_rejected_total",
				Help: "Total number of postings rejected before any write",
			},
			[]string{"reference_type"},
		),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gojournal_posting_duration_seconds",
			Help:    "Duration of posting operations",
			Buckets: prometheus.DefBuckets,
		}),

		IdempotentReplays: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gojournal_idempotent_replays_total",
			Help: "Total number of postings served from a stored result",
		}),
		IdempotencyConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gojournal_idempotency_conflicts_total",
			Help: "Total number of postings rejected due to a pending claim",
		}),
		KeysSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gojournal_idempotency_keys_swept_total",
			Help: "Total number of expired idempotency records deleted",
		}),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gojournal_outbox_events_published_total",
			Help: "Total number of outbox events published",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gojournal_outbox_publish_errors_total",
			Help: "Total number of outbox publish failures",
		}),
	}
}
