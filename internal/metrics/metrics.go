package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Relay processing metrics
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagwatch_relay_events_total",
			Help: "Total number of push events processed",
		},
		[]string{"result"},
	)

	ProcessDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tagwatch_relay_process_duration_seconds",
			Help:    "Duration of end-to-end event processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Downstream failure metrics
	StoreErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tagwatch_relay_store_errors_total",
			Help: "Total number of failed record writes",
		},
	)

	PublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tagwatch_relay_publish_errors_total",
			Help: "Total number of failed notification publishes",
		},
	)

	// Ingest metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagwatch_relay_rate_limit_hits_total",
			Help: "Total number of rate limit hits on the webhook endpoint",
		},
		[]string{"source"},
	)
)
