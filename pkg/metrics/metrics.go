package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records the counters the storefront cares about.
type StorefrontMetrics struct {
	ordersCreated       *prometheus.CounterVec
	cartPersistFailures prometheus.Counter
	notifyFailures      *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted, by submission source.",
	}, []string{"source"})
	cartPersistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Fire-and-forget cart snapshot writes that failed.",
	})
	notifyFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Best-effort notifications that could not be delivered.",
	}, []string{"kind"})
	reg.MustRegister(ordersCreated, cartPersistFailures, notifyFailures)
	return &StorefrontMetrics{
		ordersCreated:       ordersCreated,
		cartPersistFailures: cartPersistFailures,
		notifyFailures:      notifyFailures,
	}
}

// IncOrderCreated counts a persisted order. Source is "cart" or "direct".
func (m *StorefrontMetrics) IncOrderCreated(source string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncCartPersistFailure counts a failed async cart write.
func (m *StorefrontMetrics) IncCartPersistFailure() {
	if m == nil || m.cartPersistFailures == nil {
		return
	}
	m.cartPersistFailures.Inc()
}

// IncNotifyFailure counts an undelivered notification. Kind is "order" or
// "consultation".
func (m *StorefrontMetrics) IncNotifyFailure(kind string) {
	if m == nil || m.notifyFailures == nil {
		return
	}
	m.notifyFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
