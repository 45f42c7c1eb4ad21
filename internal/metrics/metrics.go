package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benefits_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "benefits_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	GatewayOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benefits_gateway_operations_total",
			Help: "Persistence gateway operations by entity, operation and result",
		},
		[]string{"entity", "op", "result"},
	)

	GatewayResets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benefits_gateway_corrupt_values_total",
			Help: "Stored values that failed to parse and were treated as empty",
		},
		[]string{"entity"},
	)

	GovAPIFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benefits_govapi_fetches_total",
			Help: "Government API fetches by kind and data source served",
		},
		[]string{"kind", "source"},
	)

	QueueOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benefits_offline_queue_outcomes_total",
			Help: "Offline retry queue replay outcomes",
		},
		[]string{"outcome"},
	)
)
