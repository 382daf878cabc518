package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TransactionMetrics records outcomes of money-moving operations.
type TransactionMetrics struct {
	duration  *prometheus.HistogramVec
	recorded  *prometheus.CounterVec
	failed    *prometheus.CounterVec
	published *prometheus.CounterVec
}

// NewTransactionMetrics registers the transaction metrics on the provided registerer.
func NewTransactionMetrics(reg prometheus.Registerer) *TransactionMetrics {
	if reg == nil {
		return &TransactionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transaction_duration_seconds",
		Help:    "Duration of recorded transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	recorded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_recorded",
		Help: "Successfully recorded transactions.",
	}, []string{"operation", "payment_method"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_failed",
		Help: "Transactions that rolled back.",
	}, []string{"operation"})
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_events_published",
		Help: "Outbox events delivered to the message broker.",
	}, []string{"event_type"})
	reg.MustRegister(duration, recorded, failed, published)
	return &TransactionMetrics{
		duration:  duration,
		recorded:  recorded,
		failed:    failed,
		published: published,
	}
}

// ObserveDuration records how long the named operation took.
func (m *TransactionMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncRecorded increments the success counter for the named operation.
func (m *TransactionMetrics) IncRecorded(operation, paymentMethod string) {
	if m == nil || m.recorded == nil {
		return
	}
	m.recorded.WithLabelValues(normalizeLabel(operation), normalizeLabel(paymentMethod)).Inc()
}

// IncFailed increments the failure counter for the named operation.
func (m *TransactionMetrics) IncFailed(operation string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncPublished increments the outbox publish counter for the given event type.
func (m *TransactionMetrics) IncPublished(eventType string) {
	if m == nil || m.published == nil {
		return
	}
	m.published.WithLabelValues(normalizeLabel(eventType)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
