// Package observability exposes Prometheus metrics for the API. Counters are
// registered on the default registry and served on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DisposalsTotal counts recorded disposals by reason.
	DisposalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "automaten",
		Name:      "disposals_total",
		Help:      "Number of recorded waste disposals.",
	}, []string{"reason"})

	// SessionsClosedTotal counts closed sales sessions.
	SessionsClosedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "automaten",
		Name:      "sales_sessions_closed_total",
		Help:      "Number of closed sales sessions.",
	})

	// EmailsTotal counts email deliveries by final status.
	EmailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "automaten",
		Name:      "emails_total",
		Help:      "Number of email delivery attempts by outcome.",
	}, []string{"status"})

	// ScanActionsTotal counts scanner dispatches by action.
	ScanActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "automaten",
		Name:      "scan_actions_total",
		Help:      "Number of barcode scan actions by type.",
	}, []string{"action"})
)
