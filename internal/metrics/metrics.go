package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_http_requests_total",
		Help: "Total number of HTTP requests handled, by route, method and status.",
	},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketplace_http_request_duration_seconds",
		Help:    "HTTP request latency, by route and method.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"route", "method"},
	)

	StoreErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_store_errors_total",
		Help: "Total number of errors encountered during store operations.",
	},
		[]string{"operation"},
	)

	AuditEntriesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_audit_entries_dropped_total",
		Help: "Total number of audit entries dropped because the pipeline was saturated.",
	})
)
