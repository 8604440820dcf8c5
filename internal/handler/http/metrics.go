package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"provider-directory/internal/handler/http/pathutil"
)

// MetricsPath is where MetricsHandler is mounted. Scrapes of it are not
// counted.
const MetricsPath = "/metrics"

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "npd_http_requests_total",
			Help: "Total number of HTTP requests by normalized route",
		},
		[]string{"method", "route", "status"},
	)

	// Buckets reach 30s since session reads with wait=1 block until the
	// backend page arrives.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "npd_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	requestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "npd_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		},
	)

	responseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "npd_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(128, 4, 7),
		},
		[]string{"route"},
	)
)

// MetricsMiddleware records request count, latency and response size per
// normalized route.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == MetricsPath {
			next.ServeHTTP(w, r)
			return
		}
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		route := pathutil.NormalizePath(r.URL.Path)
		rec := record(w)
		start := time.Now()
		next.ServeHTTP(rec, r)

		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.statusCode)).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		responseSize.WithLabelValues(route).Observe(float64(rec.bytesWritten))
	})
}

// MetricsHandler serves the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
