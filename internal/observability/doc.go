// Package observability groups the logging, metrics and tracing used across
// the directory.
//
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus counters for search commands, fetches, the
//     backend cache, settings refreshes and active sessions
//   - tracing: OpenTelemetry provider setup, inbound HTTP spans and
//     outbound FHIR client spans
package observability
