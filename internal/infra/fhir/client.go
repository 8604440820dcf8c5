// Package fhir is the HTTP adapter to the directory's FHIR backend.
//
// Every request passes through an outbound token bucket, a circuit breaker
// and bounded retries. Searches are additionally served from a per-tuple
// cache that collapses identical in-flight requests into one backend call.
package fhir

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"provider-directory/internal/domain/entity"
	"provider-directory/internal/observability/metrics"
	"provider-directory/internal/observability/tracing"
	"provider-directory/internal/resilience/circuitbreaker"
	"provider-directory/internal/resilience/retry"
)

const (
	// maxErrorBodyBytes bounds how much of an error response is kept.
	maxErrorBodyBytes = 4 << 10
	// defaultMaxBodyBytes bounds a decoded response body.
	defaultMaxBodyBytes = 16 << 20
)

// Config holds the backend connection settings.
type Config struct {
	// BaseURL is the backend origin, optionally with a path prefix.
	BaseURL string

	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration

	// RequestsPerSecond and Burst size the outbound token bucket.
	RequestsPerSecond float64
	Burst             int

	// Retry and Breaker guard each logical request.
	Retry   retry.Config
	Breaker circuitbreaker.Config

	// MaxBodyBytes bounds a decoded response body.
	MaxBodyBytes int64
}

// DefaultConfig returns settings suitable for interactive searches.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:           baseURL,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 20,
		Burst:             40,
		Retry:             retry.FHIRAPIConfig(),
		Breaker:           circuitbreaker.FHIRAPIConfig(),
		MaxBodyBytes:      defaultMaxBodyBytes,
	}
}

// Client performs JSON GETs against the backend.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
	retry      retry.Config
	maxBody    int64
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger sets the logger used for backend failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := entity.ValidateBaseURL(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("fhir client: %w", err)
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fhir client: parse base url: %w", err)
	}

	breakerCfg := cfg.Breaker
	if breakerCfg.Name == "" {
		breakerCfg = circuitbreaker.FHIRAPIConfig()
	}
	breakerCfg.IsSuccessful = healthyBackend

	retryCfg := cfg.Retry
	if retryCfg.MaxAttempts < 1 {
		retryCfg.MaxAttempts = 1
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	c := &Client{
		base:       base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    circuitbreaker.New(breakerCfg),
		retry:      retryCfg,
		maxBody:    maxBody,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retry.Logger == nil {
		c.retry.Logger = c.logger
	}
	return c, nil
}

// Breaker returns the circuit breaker guarding backend calls.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// getJSON fetches template (expanded with vars) and decodes the body into out.
// resource labels metrics and spans.
func (c *Client) getJSON(ctx context.Context, resource, template string, vars map[string]string, query url.Values, out any) error {
	u := resolve(c.base, expandPath(template, vars, c.logger), query)
	target := u.String()
	shown := withoutUserinfo(u)

	if err := c.limiter.Wait(ctx); err != nil {
		return &RequestError{URL: shown, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	var status int
	err := c.breaker.Run(func() error {
		return retry.WithBackoff(ctx, c.retry, func() error {
			var err error
			status, err = c.do(ctx, resource, target, out)
			return err
		})
	})
	if err != nil {
		c.logger.Warn("backend request failed",
			slog.String("resource", resource),
			slog.String("path", u.Path),
			slog.Int("status", status),
			slog.Any("error", err))
		return &RequestError{URL: shown, StatusCode: status, Err: err}
	}
	return nil
}

// do performs one HTTP attempt and returns the response status.
func (c *Client) do(ctx context.Context, resource, target string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Accept", "application/fhir+json, application/json")

	ctx, span := tracing.StartClientSpan(ctx, "fhir.GET "+resource, req)
	defer span.End()
	req = req.WithContext(ctx)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordBackendRequest(resource, 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return 0, fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordBackendRequest(resource, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if resp.StatusCode >= 500 {
			span.SetStatus(codes.Error, resp.Status)
		}
		return resp.StatusCode, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxBody)).Decode(out); err != nil {
		span.RecordError(err)
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
