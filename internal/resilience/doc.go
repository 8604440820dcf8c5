// Package resilience provides reliability and fault tolerance patterns for
// calls from the directory to its FHIR backend.
//
// The package supports:
//   - Circuit breakers around search, lookup and settings requests
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FHIRAPIConfig())
//	err := cb.Run(func() error {
//	    return retry.WithBackoff(ctx, retry.FHIRAPIConfig(), func() error {
//	        return getBundle(ctx)
//	    })
//	})
//	if errors.Is(err, circuitbreaker.ErrOpen) {
//	    // backend skipped; show the last results
//	}
package resilience
