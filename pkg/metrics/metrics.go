// Package metrics exposes prometheus instrumentation for store operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// StoreMetrics holds the prometheus collectors fed by the record stores.
// It satisfies store.Observer.
type StoreMetrics struct {
	opsTotal    *prometheus.CounterVec
	opDuration  *prometheus.HistogramVec
	recordsHeld *prometheus.GaugeVec
}

// NewStoreMetrics creates and registers the store collectors.
func NewStoreMetrics() *StoreMetrics {
	return &StoreMetrics{
		opsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carrent_store_operations_total",
				Help: "Total number of record store operations",
			},
			[]string{"store", "operation", "status"},
		),

		opDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carrent_store_operation_duration_seconds",
				Help:    "Record store operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"store", "operation"},
		),

		recordsHeld: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "carrent_store_records",
				Help: "Number of records currently held per store",
			},
			[]string{"store"},
		),
	}
}

// ObserveOp records one completed store operation.
func (m *StoreMetrics) ObserveOp(store, operation string, err error, duration time.Duration) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.opsTotal.WithLabelValues(store, operation, status).Inc()
	m.opDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
}

// SetRecords updates the record-count gauge for a store.
func (m *StoreMetrics) SetRecords(store string, n int) {
	m.recordsHeld.WithLabelValues(store).Set(float64(n))
}
