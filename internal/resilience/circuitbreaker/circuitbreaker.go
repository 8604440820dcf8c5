// Package circuitbreaker stops calling the FHIR backend once it keeps
// failing, and probes it again after a cool-down. It wraps
// github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrOpen is wrapped into the error of any call rejected without reaching
// the backend, whether the circuit is open or the half-open probe quota is
// used up. The gobreaker error stays in the chain as well.
var ErrOpen = errors.New("circuit open")

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name labels logs and the state gauge.
	Name string

	// MaxRequests is the number of probes let through while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts; zero never clears them.
	Interval time.Duration

	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit,
	// once at least MinRequests have been counted.
	FailureThreshold float64
	MinRequests      uint32

	// IsSuccessful classifies an error returned by the wrapped call.
	// Errors it accepts count as successes. Nil means only a nil error succeeds.
	IsSuccessful func(err error) bool

	// Logger receives state changes. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a default configuration for circuit breakers.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// FHIRAPIConfig returns configuration for directory searches and lookups.
// Searches are user-facing, so the open state is kept short.
func FHIRAPIConfig() Config {
	cfg := DefaultConfig("fhir-api")
	cfg.Timeout = 15 * time.Second
	return cfg
}

// SettingsAPIConfig returns configuration for the frontend settings endpoint.
// One probe at a time is enough for a background refresh.
func SettingsAPIConfig() Config {
	return Config{
		Name:             "settings-api",
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

// readyToTrip applies the ratio policy of cfg.
func readyToTrip(cfg Config) func(gobreaker.Counts) bool {
	return func(counts gobreaker.Counts) bool {
		if counts.Requests == 0 || counts.Requests < cfg.MinRequests {
			return false
		}
		return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
	}
}

// CircuitBreaker guards one backend.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a circuit breaker in the closed state.
func New(cfg Config) *CircuitBreaker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: readyToTrip(cfg),
		OnStateChange: func(name string, from, to gobreaker.State) {
			level := slog.LevelInfo
			if to == gobreaker.StateOpen {
				level = slog.LevelWarn
			}
			logger.Log(context.Background(), level, "circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			stateGauge.WithLabelValues(name).Set(float64(to))
			if to == gobreaker.StateOpen {
				tripsTotal.WithLabelValues(name).Inc()
			}
		},
		IsSuccessful: cfg.IsSuccessful,
	}

	stateGauge.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Run calls fn unless the circuit rejects it, in which case the returned
// error wraps ErrOpen.
func (cb *CircuitBreaker) Run(fn func() error) error {
	_, err := cb.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return cb.translate(err)
}

// Do is Run with a typed result.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if res == nil {
		var zero T
		return zero, cb.translate(err)
	}
	return res.(T), cb.translate(err)
}

func (cb *CircuitBreaker) translate(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w: %w", cb.name, ErrOpen, err)
	}
	return err
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Counts returns the request counts of the current generation.
func (cb *CircuitBreaker) Counts() gobreaker.Counts {
	return cb.breaker.Counts()
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen returns true if the circuit breaker is in the open state.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
