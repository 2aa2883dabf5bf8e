package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	loadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doubleit",
			Subsystem: "model",
			Name:      "loads_total",
			Help:      "Artifact load attempts by result",
		},
		[]string{"result"},
	)

	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doubleit",
			Subsystem: "model",
			Name:      "predictions_total",
			Help:      "Predictions by result",
		},
		[]string{"result"},
	)

	predictionValues = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "doubleit",
			Subsystem: "model",
			Name:      "prediction_values",
			Help:      "Number of values per successful prediction",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(loadsTotal, predictionsTotal, predictionValues)
}
