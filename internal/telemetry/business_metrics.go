// Package telemetry holds Prometheus metrics for business-level
// observability, as opposed to the per-request HTTP metrics in the
// middleware package.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics tracks the payment funnel. All methods are nil-safe
// so callers can run without metrics in tests.
type BusinessMetrics struct {
	bookingsPaid    prometheus.Counter
	bookingValue    prometheus.Histogram
	paymentsFailed  *prometheus.CounterVec
	webhookReceived *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers the business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "idun"
	}

	subsystem := "business"

	return &BusinessMetrics{
		bookingsPaid: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookings_paid_total",
			Help:      "Total bookings confirmed paid via webhook",
		}),
		bookingValue: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "booking_value_cents",
			Help:      "Paid booking amounts in cents",
			Buckets:   []float64{500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
		}),
		paymentsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "payments_failed_total",
			Help:      "Total failed payment attempts by decline code",
		}, []string{"code"}),
		webhookReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "webhooks_received_total",
			Help:      "Total webhook events received by type",
		}, []string{"type"}),
	}
}

// RecordBookingPaid records a successful payment settlement.
func (m *BusinessMetrics) RecordBookingPaid(amountCents int64) {
	if m == nil {
		return
	}
	m.bookingsPaid.Inc()
	m.bookingValue.Observe(float64(amountCents))
}

// RecordPaymentFailed records a failed payment attempt. The code is the
// processor's decline code, or "unknown" when absent.
func (m *BusinessMetrics) RecordPaymentFailed(code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.paymentsFailed.WithLabelValues(code).Inc()
}

// RecordWebhookReceived records an incoming webhook event.
func (m *BusinessMetrics) RecordWebhookReceived(eventType string) {
	if m == nil {
		return
	}
	m.webhookReceived.WithLabelValues(eventType).Inc()
}
