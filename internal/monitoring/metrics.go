package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives point-of-sale activity. A nil Recorder is never passed
// around; use Nop instead.
type Recorder interface {
	ItemAdded(category string)
	ValidationFailed(step, code string)
	OrderCompleted(orderType, paymentOption string, totalCents int64)
	SessionOpened()
	SessionClosed()
}

// Metrics exports POS activity to Prometheus and mirrors the counters into
// a Monitor for the JSON endpoint.
type Metrics struct {
	registry *prometheus.Registry
	monitor  *Monitor

	itemsAdded         *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	ordersCompleted    *prometheus.CounterVec
	orderValue         *prometheus.HistogramVec
	activeSessions     prometheus.Gauge
}

// NewMetrics creates the collectors on a private registry
func NewMetrics(monitor *Monitor) *Metrics {
	if monitor == nil {
		monitor = NewMonitor()
	}
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		monitor:  monitor,
		itemsAdded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_items_added_total",
				Help: "Products added to carts",
			},
			[]string{"category"},
		),
		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_validation_failures_total",
				Help: "Wizard transitions blocked by validation",
			},
			[]string{"step", "code"},
		),
		ordersCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_orders_completed_total",
				Help: "Orders completed",
			},
			[]string{"order_type", "payment_option"},
		),
		orderValue: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pos_order_value_dollars",
				Help:    "Total value of completed orders",
				Buckets: prometheus.LinearBuckets(0, 10, 10),
			},
			[]string{"payment_option"},
		),
		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pos_active_sessions",
				Help: "Order sessions currently open",
			},
		),
	}

	registry.MustRegister(
		m.itemsAdded,
		m.validationFailures,
		m.ordersCompleted,
		m.orderValue,
		m.activeSessions,
	)

	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Monitor returns the JSON snapshot monitor
func (m *Metrics) Monitor() *Monitor {
	return m.monitor
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ItemAdded(category string) {
	m.itemsAdded.WithLabelValues(category).Inc()
	m.monitor.Increment("items_added", 1)
}

func (m *Metrics) ValidationFailed(step, code string) {
	m.validationFailures.WithLabelValues(step, code).Inc()
	m.monitor.Increment("validation_failures", 1)
}

func (m *Metrics) OrderCompleted(orderType, paymentOption string, totalCents int64) {
	m.ordersCompleted.WithLabelValues(orderType, paymentOption).Inc()
	m.orderValue.WithLabelValues(paymentOption).Observe(float64(totalCents) / 100)
	m.monitor.Increment("orders_completed", 1)
	m.monitor.Increment("revenue_cents", totalCents)
}

func (m *Metrics) SessionOpened() {
	m.activeSessions.Inc()
	m.monitor.Increment("active_sessions", 1)
}

func (m *Metrics) SessionClosed() {
	m.activeSessions.Dec()
	m.monitor.Increment("active_sessions", -1)
}

type nopRecorder struct{}

func (nopRecorder) ItemAdded(string)                     {}
func (nopRecorder) ValidationFailed(string, string)      {}
func (nopRecorder) OrderCompleted(string, string, int64) {}
func (nopRecorder) SessionOpened()                       {}
func (nopRecorder) SessionClosed()                       {}

// Nop discards everything
var Nop Recorder = nopRecorder{}
