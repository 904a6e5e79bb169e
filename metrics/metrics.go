// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	CollectionTasks       = "tasks"
	CollectionTempRecords = "temp_records"
	OutcomeOK             = "ok"
	OutcomeEmpty          = "empty"
	OutcomeError          = "error"
)

var (
	RecordsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kitchenlog",
		Name:      "records_created_total",
		Help:      "Records inserted, by collection.",
	}, []string{"collection"})

	StoreReadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kitchenlog",
		Name:      "store_read_failures_total",
		Help:      "Full-collection reads that failed and fell back to an empty set.",
	}, []string{"collection"})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kitchenlog",
		Name:      "exports_total",
		Help:      "Export requests by collection, format and outcome.",
	}, []string{"collection", "format", "outcome"})

	CriticalReadings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kitchenlog",
		Name:      "critical_readings_total",
		Help:      "Temperature readings recorded above their safe ceiling, by location.",
	}, []string{"location"})
)

var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "kitchenlog",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request latency by method, route and status.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})
