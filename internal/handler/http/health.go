package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"provider-directory/internal/handler/http/respond"
)

// Check statuses, from best to worst.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one named check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthCheck inspects one dependency. It must return promptly once ctx is done.
type HealthCheck func(ctx context.Context) CheckStatus

// HealthHandler runs every check concurrently and reports the worst status.
// Only an unhealthy check turns the response into a 503.
type HealthHandler struct {
	Checks  map[string]HealthCheck
	Version string
	Timeout time.Duration
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := h.run(ctx)

	status := StatusHealthy
	for _, c := range checks {
		status = worse(status, c.Status)
	}
	code := http.StatusOK
	if status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) run(ctx context.Context) map[string]CheckStatus {
	var (
		mu  sync.Mutex
		out = make(map[string]CheckStatus, len(h.Checks))
	)
	g, gctx := errgroup.WithContext(ctx)
	for name, check := range h.Checks {
		g.Go(func() error {
			res := check(gctx)
			mu.Lock()
			out[name] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func worse(a, b string) string {
	rank := func(s string) int {
		switch s {
		case StatusHealthy:
			return 0
		case StatusDegraded:
			return 1
		default:
			return 2
		}
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}

// ReadyHandler reports ready while Ready returns nil.
type ReadyHandler struct {
	Ready func(ctx context.Context) error
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Ready != nil {
		if err := h.Ready(ctx); err != nil {
			http.Error(w, "not ready: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler always reports alive.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
