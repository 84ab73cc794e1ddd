// Package metrics exports operation telemetry to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/FairForge/loadforge/internal/loadtest"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadforge_operations_total",
			Help: "Total number of operations executed",
		},
		[]string{"kind", "status"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loadforge_operation_duration_seconds",
			Help:    "Operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	bytesTransferred = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadforge_bytes_transferred_total",
			Help: "Total bytes transferred by successful operations",
		},
		[]string{"kind"},
	)
)

// Collector is a loadtest.Observer that mirrors every recorded metric
// into the process-wide Prometheus registry.
type Collector struct{}

// NewCollector creates a collector.
func NewCollector() *Collector { return &Collector{} }

// ObserveOperation implements loadtest.Observer.
func (c *Collector) ObserveOperation(m loadtest.OperationMetric) {
	status := "success"
	if !m.Success {
		status = "failure"
	}
	operationsTotal.WithLabelValues(string(m.Kind), status).Inc()
	operationDuration.WithLabelValues(string(m.Kind)).Observe(m.Duration.Seconds())
	if m.Success {
		bytesTransferred.WithLabelValues(string(m.Kind)).Add(float64(m.Bytes))
	}
}
