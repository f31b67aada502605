package metrics

import "github.com/prometheus/client_golang/prometheus"

// External ranker Prometheus metrics.
var (
	RankerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imagedex",
			Name:      "ranker_requests_total",
			Help:      "Total number of external ranker requests",
		},
		[]string{"model", "status"},
	)

	RankerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "imagedex",
			Name:      "ranker_request_duration_seconds",
			Help:      "External ranker request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)

	RankerErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imagedex",
			Name:      "ranker_errors_total",
			Help:      "Total external ranker errors",
		},
		[]string{"model", "error_type"},
	)

	RankerCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "imagedex",
			Name:      "ranker_candidates",
			Help:      "Number of candidates sent to the external ranker per request",
			Buckets:   []float64{1, 5, 10, 20, 40},
		},
	)
)

var rankerMetricsRegistered bool

// RegisterRankerMetrics registers ranker metrics. Must be called once from main.
func RegisterRankerMetrics() {
	if rankerMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankerRequestsTotal)
	prometheus.MustRegister(RankerRequestDuration)
	prometheus.MustRegister(RankerErrorsTotal)
	prometheus.MustRegister(RankerCandidates)
	rankerMetricsRegistered = true
}
