package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PredictionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ridedemand_api_predictions_served_total",
		Help: "Total number of trip predictions returned.",
	})
	PredictionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ridedemand_api_predictions_failed_total",
		Help: "Total number of prediction requests refused or failed, by reason.",
	}, []string{"reason"})
	PredictionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ridedemand_api_prediction_cache_hits_total",
		Help: "Total number of predictions answered from cache.",
	})
	InferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ridedemand_api_inference_duration_seconds",
		Help:    "Duration of a single ensemble evaluation.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})
	ModelReady = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ridedemand_api_model_ready",
		Help: "1 when the prediction model is loaded, 0 otherwise.",
	})
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ridedemand_api_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
