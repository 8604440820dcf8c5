package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"provider-directory/internal/common/pagination"
	"provider-directory/internal/common/sorting"
	"provider-directory/internal/domain/entity"
	"provider-directory/internal/observability/metrics"
	"provider-directory/internal/repository"
)

// Factory builds a session whose location starts as rawQuery.
type Factory func(rawQuery string) Session

// NewFactory returns a Factory for controllers over source.
func NewFactory[T any](resource entity.ResourceType, source repository.Searcher[T], sorts *sorting.Registry, codec pagination.Codec, logger *slog.Logger) Factory {
	return func(rawQuery string) Session {
		return New(resource, source, sorts, codec,
			WithLocation[T](NewMemoryLocation(rawQuery)),
			WithLogger[T](logger))
	}
}

type sessionEntry struct {
	session  Session
	lastSeen time.Time
}

// Registry holds live search sessions by id. Sessions idle for longer than
// the TTL are closed by Sweep.
type Registry struct {
	factories map[entity.ResourceType]Factory
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewRegistry creates a session registry. A non-positive ttl disables expiry.
func NewRegistry(factories map[entity.ResourceType]Factory, ttl time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		factories: factories,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
		sessions:  make(map[string]*sessionEntry),
	}
}

// Create opens a session for resource seeded with rawQuery.
func (r *Registry) Create(resource entity.ResourceType, rawQuery string) (string, Session, error) {
	factory, ok := r.factories[resource]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedResource, resource)
	}
	s := factory(rawQuery)
	id := r.newID()

	r.mu.Lock()
	r.sessions[id] = &sessionEntry{session: s, lastSeen: r.now()}
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.SetActiveSessions(n)
	r.logger.Debug("search session created",
		slog.String("session_id", id),
		slog.String("resource", resource.String()))
	return id, s, nil
}

// Get returns the session with id and marks it as used.
func (r *Registry) Get(id string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = r.now()
	return e.session, nil
}

// Delete closes and removes the session with id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	e.session.Close()
	metrics.SetActiveSessions(n)
	return nil
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	var expired []Session
	r.mu.Lock()
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.session)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	metrics.SetActiveSessions(n)
	if len(expired) > 0 {
		r.logger.Info("expired search sessions closed",
			slog.Int("closed", len(expired)),
			slog.Int("active", n))
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close closes every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*sessionEntry)
	r.mu.Unlock()

	for _, e := range sessions {
		e.session.Close()
	}
	metrics.SetActiveSessions(0)
}

// List runs a one-shot search for rawQuery and returns the settled view.
// No background flags are reported since no earlier state exists.
func List(ctx context.Context, factory Factory, rawQuery string) (View, error) {
	s := factory(rawQuery)
	defer s.Close()
	return s.Await(ctx)
}
