// Package retry re-runs backend calls that failed for transient reasons,
// waiting an exponentially growing, jittered delay between attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrBudgetExhausted is wrapped into the returned error when the caller's
// deadline leaves no room for the next wait.
var ErrBudgetExhausted = errors.New("retry budget exhausted")

// Config holds the configuration for retry logic.
type Config struct {
	MaxAttempts  int           // Total attempts including the first
	InitialDelay time.Duration // Wait after the first failure
	MaxDelay     time.Duration // Cap on any single wait, Retry-After included
	Multiplier   float64

	// JitterFraction adds up to this share of the delay at random (0.0 to 1.0).
	JitterFraction float64

	// Logger receives one line per retried failure. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a general-purpose retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// FHIRAPIConfig returns configuration for directory searches.
// A user is waiting on the result, so retries are few and short.
func FHIRAPIConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   200 * time.Millisecond,
		MaxDelay:       2 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// SettingsAPIConfig returns configuration for the background settings refresh.
func SettingsAPIConfig() Config {
	return Config{
		MaxAttempts:    4,
		InitialDelay:   1 * time.Second,
		MaxDelay:       10 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// Delay returns the un-jittered wait after the given failed attempt
// (1-based): InitialDelay * Multiplier^(attempt-1), capped at MaxDelay.
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	mult := c.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(c.InitialDelay) * math.Pow(mult, float64(attempt-1))
	if c.MaxDelay > 0 && d > float64(c.MaxDelay) {
		return c.MaxDelay
	}
	return time.Duration(d)
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// WithBackoff runs fn until it succeeds, fails with a non-retryable error,
// or MaxAttempts is reached. A server-supplied Retry-After replaces the
// computed delay, still capped at MaxDelay. When ctx carries a deadline
// that would pass during the next wait, the last error is returned at once.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	log := cfg.logger()
	var lastErr error

	for attempt := 1; attempt <= max(cfg.MaxAttempts, 1); attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				log.Info("backend call succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt >= cfg.MaxAttempts {
			break
		}

		wait := nextWait(cfg, attempt, lastErr)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			return fmt.Errorf("%w after %d attempts: %w", ErrBudgetExhausted, attempt, lastErr)
		}

		log.Warn("backend call failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", wait),
			slog.Any("error", lastErr))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

func nextWait(cfg Config, attempt int, err error) time.Duration {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		if cfg.MaxDelay > 0 && httpErr.RetryAfter > cfg.MaxDelay {
			return cfg.MaxDelay
		}
		return httpErr.RetryAfter
	}
	return addJitter(cfg.Delay(attempt), cfg.JitterFraction)
}

// IsRetryable reports whether err is transient: a network timeout, a
// refused or reset connection, or an HTTP 408, 429 or 5xx. Caller
// cancellation is never retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500 && httpErr.StatusCode < 600:
			return true
		case httpErr.StatusCode == http.StatusTooManyRequests, httpErr.StatusCode == http.StatusRequestTimeout:
			return true
		}
	}
	return false
}

// HTTPError is a non-2xx backend response.
type HTTPError struct {
	StatusCode int
	Message    string

	// RetryAfter is the parsed Retry-After header, zero when absent.
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ParseRetryAfter reads a Retry-After header given either as delay seconds
// or as an HTTP date relative to now. Unparseable or past values yield 0.
func ParseRetryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return d
	}
	fraction = min(fraction, 1.0)
	// #nosec G404 -- backoff jitter needs no cryptographic randomness
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}
