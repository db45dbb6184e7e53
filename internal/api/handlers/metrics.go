package handlers

import "github.com/prometheus/client_golang/prometheus"

var entryOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pitwall_entry_operations_total",
		Help: "Entry mutations by operation and outcome",
	},
	[]string{"op", "outcome"},
)

func RegisterMetrics() {
	prometheus.MustRegister(entryOps)
}
