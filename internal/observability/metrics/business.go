package metrics

import (
	"strconv"
	"time"
)

// Fetch outcomes recorded by RecordSearchFetch.
const (
	OutcomeApplied = "applied"
	OutcomeStale   = "stale"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// RecordSearchCommand records one controller command.
func RecordSearchCommand(resource, command string) {
	SearchCommandsTotal.WithLabelValues(resource, command).Inc()
}

// RecordSearchFetch records what the controller did with a fetch.
func RecordSearchFetch(resource, outcome string) {
	SearchFetchesTotal.WithLabelValues(resource, outcome).Inc()
}

// RecordBackendRequest records one backend round trip. A status of 0 means
// no HTTP response was received.
func RecordBackendRequest(resource string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	BackendRequestDuration.WithLabelValues(resource, label).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit, miss or shared in-flight call.
func RecordCacheLookup(result string) {
	BackendCacheTotal.WithLabelValues(result).Inc()
}

// RecordSettingsRefresh records a settings refresh attempt.
func RecordSettingsRefresh(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	SettingsRefreshTotal.WithLabelValues(result).Inc()
}

// SetActiveSessions updates the live session gauge.
func SetActiveSessions(n int) {
	SearchSessionsActive.Set(float64(n))
}
