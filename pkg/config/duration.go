package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDuration is wrapped by every duration validation failure.
var ErrInvalidDuration = errors.New("invalid duration")

// ValidatePositiveDuration rejects zero and negative durations, for
// timeouts and TTLs that must be set.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: must be positive, got %v", ErrInvalidDuration, d)
	}
	return nil
}

// ValidateNonNegativeDuration rejects negative durations. Zero is allowed
// and means "disabled", as for a cache TTL.
func ValidateNonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: must be non-negative, got %v", ErrInvalidDuration, d)
	}
	return nil
}

// ValidateDurationRange requires lo <= d <= hi.
func ValidateDurationRange(d, lo, hi time.Duration) error {
	switch {
	case lo > hi:
		return fmt.Errorf("%w: empty range [%v, %v]", ErrInvalidDuration, lo, hi)
	case d < lo, d > hi:
		return fmt.Errorf("%w: %v is outside [%v, %v]", ErrInvalidDuration, d, lo, hi)
	}
	return nil
}
