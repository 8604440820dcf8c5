// Package tracing provides OpenTelemetry tracing integration.
//
// Features:
//   - Server spans for every HTTP request (Middleware)
//   - Client spans around FHIR backend calls (StartClientSpan)
//   - W3C trace context propagation in both directions
//
// Example usage:
//
//	import "provider-directory/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.InitProvider("provider-directory", 0.1)
//	    defer func() { _ = shutdown(context.Background()) }()
//	}
//
//	func callBackend(ctx context.Context, req *http.Request) {
//	    ctx, span := tracing.StartClientSpan(ctx, "fhir.search", req)
//	    defer span.End()
//	    // ... send request ...
//	}
package tracing
