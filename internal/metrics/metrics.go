package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Domain
	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legion_mutations_total",
			Help: "Successful create/update/delete operations",
		},
		[]string{"entity", "action"},
	)
	CascadeDeletedRecords = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "legion_cascade_deleted_records_total",
			Help: "Records removed because their member was deleted",
		},
	)

	// Events
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legion_events_published_total",
			Help: "Domain events handed to the publisher",
		},
		[]string{"result"}, // ok|error|dropped
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// /metrics endpoint handler
var Handler = promhttp.Handler

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestLatency,
			RateLimited,
			MutationsTotal,
			CascadeDeletedRecords,
			EventsPublished,
			WorkerQueueDepth,
		)
	})
}
