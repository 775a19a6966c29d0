// Package observability counts action outcomes. Soft failures are swallowed
// by the pipeline on purpose; the counters keep them observable without
// changing the user-visible contract.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	actionsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mactune",
			Subsystem: "actions",
			Name:      "applied_total",
			Help:      "Tuning actions invoked in real mode.",
		},
		[]string{"group"},
	)
	actionsSoftFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mactune",
			Subsystem: "actions",
			Name:      "soft_failed_total",
			Help:      "Tuning actions rejected by the host and skipped.",
		},
		[]string{"group"},
	)
	actionsSimulated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mactune",
			Subsystem: "actions",
			Name:      "simulated_total",
			Help:      "Tuning actions logged in dry-run mode.",
		},
		[]string{"group"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(actionsApplied, actionsSoftFailed, actionsSimulated)
	})
}

func RecordApplied(group string) {
	RegisterMetrics()
	actionsApplied.WithLabelValues(group).Inc()
}

func RecordSoftFailure(group string) {
	RegisterMetrics()
	actionsSoftFailed.WithLabelValues(group).Inc()
}

func RecordSimulated(group string) {
	RegisterMetrics()
	actionsSimulated.WithLabelValues(group).Inc()
}
