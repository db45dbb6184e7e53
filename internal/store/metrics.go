package store

import "github.com/prometheus/client_golang/prometheus"

var recoveries = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pitwall_store_recoveries_total",
		Help: "Times the data file was rebuilt from defaults",
	},
	[]string{"reason"},
)

func RegisterMetrics() {
	prometheus.MustRegister(recoveries)
}
