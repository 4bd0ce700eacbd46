package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderMetrics collects the order pipeline's counters and latencies.
type OrderMetrics struct {
	OrdersCreated       prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
	DependencyRequests  *prometheus.CounterVec
	CreateOrderDuration prometheus.Histogram
}

// New registers the order metrics on reg. Passing a private registry in
// tests keeps registration from colliding.
func New(reg prometheus.Registerer) *OrderMetrics {
	m := &OrderMetrics{
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bakery",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of orders persisted.",
		}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bakery",
			Subsystem: "orders",
			Name:      "status_transitions_total",
			Help:      "Applied order status transitions.",
		}, []string{"from", "to"}),
		DependencyRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bakery",
			Subsystem: "orders",
			Name:      "dependency_requests_total",
			Help:      "Outbound dependency calls by outcome.",
		}, []string{"dependency", "outcome"}),
		CreateOrderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bakery",
			Subsystem: "orders",
			Name:      "create_order_duration_seconds",
			Help:      "End-to-end order creation latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.OrdersCreated, m.StatusTransitions, m.DependencyRequests, m.CreateOrderDuration)
	return m
}

// ObserveCreate records one order creation attempt.
func (m *OrderMetrics) ObserveCreate(start time.Time, ok bool) {
	m.CreateOrderDuration.Observe(time.Since(start).Seconds())
	if ok {
		m.OrdersCreated.Inc()
	}
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
