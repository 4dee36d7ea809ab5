package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ItemsRegistered counts successful item registrations.
var ItemsRegistered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "stocktrack_items_registered_total",
	Help: "Number of items registered.",
})

// Movements counts successful moves by kind (entry or exit).
var Movements = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "stocktrack_movements_total",
	Help: "Number of ledger movements appended, by kind.",
}, []string{"kind"})

// MoveConflicts counts moves lost to the optimistic concurrency check.
var MoveConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Name: "stocktrack_move_conflicts_total",
	Help: "Number of moves that failed the item version check.",
})

// HTTPRequests counts handled HTTP requests by method and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "stocktrack_http_requests_total",
	Help: "Number of HTTP requests handled.",
}, []string{"method", "status"})

// HTTPDuration observes request latency by method.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "stocktrack_http_request_duration_seconds",
	Help:    "HTTP request latency.",
	Buckets: prometheus.DefBuckets,
}, []string{"method"})
