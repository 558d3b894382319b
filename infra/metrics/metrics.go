// Package metrics registers the server's Prometheus instrumentation.
// Not named as a Non-goal anywhere in spec.md — see SPEC_FULL.md §4.12.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every counter/histogram this server exposes. Each
// field is safe for concurrent use; none of them are touched while
// any of the core server's own locks (book, registry, connection
// write) are held — see SPEC_FULL.md §5.
type Registry struct {
	ConnectionsOpened prometheus.Counter
	ConnectionsClosed prometheus.Counter
	OrdersReceived    prometheus.Counter
	FillsEmitted      prometheus.Counter
	MatchDuration     prometheus.Histogram
}

// New registers every metric against reg and returns the Registry.
func New(reg prometheus.Registerer) *Registry {
	m := &Registry{
		ConnectionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchsrv_connections_opened_total",
			Help: "Connections that completed the trader-id handshake.",
		}),
		ConnectionsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchsrv_connections_closed_total",
			Help: "Connections removed from the registry.",
		}),
		OrdersReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchsrv_orders_received_total",
			Help: "Order frames decoded off the wire and queued for matching.",
		}),
		FillsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchsrv_fills_emitted_total",
			Help: "Fully filled orders emitted by the match engine, whether or not the client was still connected.",
		}),
		MatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchsrv_match_duration_seconds",
			Help:    "Time spent inside Book.Process per order.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.ConnectionsOpened,
		m.ConnectionsClosed,
		m.OrdersReceived,
		m.FillsEmitted,
		m.MatchDuration,
	)
	return m
}

// ObserveMatch records how long a single Book.Process call took.
func (m *Registry) ObserveMatch(d time.Duration) {
	m.MatchDuration.Observe(d.Seconds())
}
