package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prediction outcomes
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightprice_predictions_total",
			Help: "Total number of price predictions by outcome",
		},
		[]string{"outcome"},
	)

	EncoderFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightprice_encoder_fallbacks_total",
			Help: "Categorical values outside the trained vocabulary, by field",
		},
		[]string{"field"},
	)

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flightprice_prediction_duration_seconds",
			Help:    "Duration of encode and model evaluation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	PredictionLogFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flightprice_prediction_log_failures_total",
			Help: "Prediction log writes that failed",
		},
	)
)
