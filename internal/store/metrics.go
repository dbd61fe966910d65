package store

import "github.com/prometheus/client_golang/prometheus"

var (
	actionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hungrynow_store_actions_total",
			Help: "Total number of actions dispatched to the store by type and phase.",
		},
		[]string{"type", "phase"},
	)

	thunkDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hungrynow_store_thunk_duration_seconds",
			Help:    "Time from pending to settlement of async actions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type", "outcome"},
	)

	inFlightRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hungrynow_store_in_flight_rejections_total",
			Help: "Dispatches refused because the same exclusive action was outstanding.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(actionsTotal, thunkDuration, inFlightRejections)
}

func phaseLabel(p Phase) string {
	if p == PhaseNone {
		return "sync"
	}
	return string(p)
}
