package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the bot's Prometheus instruments.
type Metrics struct {
	Registry *prometheus.Registry

	// EventsTotal counts inbound conversation events by kind (text, button, list).
	EventsTotal *prometheus.CounterVec
	// OrdersFinalized counts orders written to the order store.
	OrdersFinalized prometheus.Counter
	// NotifierFailures counts outbound message deliveries that failed.
	NotifierFailures prometheus.Counter
	// PaymentLinkFailures counts failed payment-link creations.
	PaymentLinkFailures prometheus.Counter
	// StalePaymentRefs counts paid callbacks whose reference id resolved to no user.
	StalePaymentRefs prometheus.Counter
}

// NewMetrics registers the bot's instruments on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bot",
			Name:      "events_total",
			Help:      "Inbound conversation events by kind.",
		}, []string{"kind"}),
		OrdersFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bot",
			Name:      "orders_finalized_total",
			Help:      "Orders written to the order store.",
		}),
		NotifierFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bot",
			Name:      "notifier_failures_total",
			Help:      "Outbound message deliveries that failed.",
		}),
		PaymentLinkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bot",
			Name:      "payment_link_failures_total",
			Help:      "Failed payment-link creations.",
		}),
		StalePaymentRefs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bot",
			Name:      "stale_payment_refs_total",
			Help:      "Paid callbacks with an unknown reference id.",
		}),
	}
	reg.MustRegister(m.EventsTotal, m.OrdersFinalized, m.NotifierFailures, m.PaymentLinkFailures, m.StalePaymentRefs)
	return m
}
