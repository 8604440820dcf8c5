// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the directory's business metrics:
//   - Search controller commands and fetch outcomes
//   - Live search sessions
//   - FHIR backend latency and search cache effectiveness
//   - Frontend settings refreshes
//
// HTTP server metrics live with the HTTP middleware. All metrics are
// registered with the Prometheus default registry and exposed via /metrics.
//
// Example usage:
//
//	import "provider-directory/internal/observability/metrics"
//
//	func fetch(resource string) {
//	    start := time.Now()
//	    // ... call backend ...
//	    metrics.RecordBackendRequest(resource, 200, time.Since(start))
//	}
package metrics
