// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search controller metrics
var (
	// SearchCommandsTotal counts controller commands by resource and command name
	SearchCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "npd_search_commands_total",
			Help: "Total number of search controller commands",
		},
		[]string{"resource", "command"},
	)

	// SearchFetchesTotal counts fetch outcomes seen by the controller.
	// outcome: applied, stale, error, skipped
	SearchFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "npd_search_fetches_total",
			Help: "Total number of search fetches by outcome",
		},
		[]string{"resource", "outcome"},
	)

	// SearchSessionsActive tracks live search sessions
	SearchSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "npd_search_sessions_active",
			Help: "Number of live search sessions",
		},
	)
)

// Backend metrics
var (
	// BackendRequestDuration measures FHIR backend call duration in seconds
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "npd_backend_request_duration_seconds",
			Help:    "FHIR backend request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"resource", "status"},
	)

	// BackendCacheTotal counts search cache lookups.
	// result: hit, miss, shared
	BackendCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "npd_backend_cache_total",
			Help: "Total number of search cache lookups by result",
		},
		[]string{"result"},
	)

	// SettingsRefreshTotal counts frontend settings refreshes by result
	SettingsRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "npd_settings_refresh_total",
			Help: "Total number of frontend settings refreshes",
		},
		[]string{"result"},
	)
)
