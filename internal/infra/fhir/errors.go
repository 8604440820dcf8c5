package fhir

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"provider-directory/internal/domain/entity"
	"provider-directory/internal/resilience/retry"
)

// ErrNotFound is returned when the backend answers 404 for a record lookup.
var ErrNotFound = fmt.Errorf("fhir: %w", entity.ErrNotFound)

// RequestError reports a failed backend request. Its message names the
// request URL, without userinfo, and is what users see as the search error.
type RequestError struct {
	URL        string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("error in %s request", e.URL)
}

// Unwrap exposes the cause and, for 404 responses, ErrNotFound.
func (e *RequestError) Unwrap() []error {
	if e.StatusCode == http.StatusNotFound {
		return []error{e.Err, ErrNotFound}
	}
	return []error{e.Err}
}

// healthyBackend classifies errors for the circuit breaker. Client errors
// and caller cancellation say nothing about backend health.
func healthyBackend(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode < 500 &&
			httpErr.StatusCode != http.StatusTooManyRequests &&
			httpErr.StatusCode != http.StatusRequestTimeout
	}
	return false
}
