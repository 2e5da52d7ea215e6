package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout attempts and the orders they produce.
type CheckoutMetrics struct {
	attempts *prometheus.CounterVec
	orders   prometheus.Counter
	duration *prometheus.HistogramVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"result"})
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_created_total",
		Help: "Orders created by successful checkouts.",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	reg.MustRegister(attempts, orders, duration)
	return &CheckoutMetrics{
		attempts: attempts,
		orders:   orders,
		duration: duration,
	}
}

// ObserveAttempt records one checkout attempt with its outcome and duration.
func (c *CheckoutMetrics) ObserveAttempt(result string, duration time.Duration) {
	if c == nil || c.attempts == nil {
		return
	}
	label := normalizeLabel(result)
	c.attempts.WithLabelValues(label).Inc()
	c.duration.WithLabelValues(label).Observe(duration.Seconds())
}

// AddOrdersCreated increments the created-orders counter.
func (c *CheckoutMetrics) AddOrdersCreated(count int) {
	if c == nil || c.orders == nil || count <= 0 {
		return
	}
	c.orders.Add(float64(count))
}

func normalizeLabel(result string) string {
	if result == "" {
		return "unknown"
	}
	return result
}
