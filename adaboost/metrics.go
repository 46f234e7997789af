package adaboost

import "github.com/prometheus/client_golang/prometheus"

var (
	trainingsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adaboost_trainings_total",
		Help: "Total number of AdaBoost trainings, by outcome.",
	}, []string{"outcome"})

	roundsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adaboost_boosting_rounds_total",
		Help: "Total number of weak learners accepted into ensembles.",
	})

	trainingError = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "adaboost_training_error",
		Help: "Training error of the most recently trained ensemble.",
	})

	trainingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "adaboost_training_duration_seconds",
		Help:    "Wall time spent training an ensemble.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	predictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adaboost_predictions_total",
		Help: "Total number of instances classified.",
	})
)

// Collectors returns the package metrics for registration with a
// prometheus.Registerer.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		trainingsTotal,
		roundsTotal,
		trainingError,
		trainingDuration,
		predictionsTotal,
	}
}
