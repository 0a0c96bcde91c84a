package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oekobox_api_requests_total",
			Help: "Total number of requests issued against the shop API.",
		},
		[]string{"method", "endpoint", "status"},
	)
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oekobox_api_request_duration_seconds",
			Help:    "Histogram of shop API request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
)

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
}

// RecordRequest records one completed API exchange. The endpoint label is the
// logical endpoint name, never the full URL, to keep cardinality bounded.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	apiRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	apiRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler returns the HTTP handler exporting Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
