// Package settings keeps the frontend settings and feature flags fetched
// from the backend.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"provider-directory/internal/domain/entity"
	"provider-directory/internal/observability/metrics"
	"provider-directory/internal/repository"
)

// Service holds the last good settings snapshot.
//
// Until the first successful refresh, and whenever the backend omits a flag,
// the configured defaults apply. A failed refresh keeps the previous snapshot.
type Service struct {
	repo     repository.SettingsRepository
	defaults entity.FrontendSettings
	logger   *slog.Logger
	now      func() time.Time

	mu          sync.RWMutex
	current     entity.FrontendSettings
	refreshedAt time.Time
	lastErr     error
}

// NewService creates a Service seeded with defaults.
func NewService(repo repository.SettingsRepository, defaults entity.FrontendSettings, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	defaults = defaults.Clone()
	return &Service{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
		now:      time.Now,
		current:  defaults.Clone(),
	}
}

// Refresh fetches settings from the backend and installs them.
func (s *Service) Refresh(ctx context.Context) error {
	fetched, err := s.repo.FrontendSettings(ctx)
	if err != nil {
		metrics.RecordSettingsRefresh(false)
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Warn("frontend settings refresh failed, keeping previous snapshot",
			slog.Any("error", err))
		return fmt.Errorf("refresh frontend settings: %w", err)
	}

	merged := fetched.Clone()
	for flag, on := range s.defaults.FeatureFlags {
		if _, ok := merged.FeatureFlags[flag]; !ok {
			merged.FeatureFlags[flag] = on
		}
	}

	s.mu.Lock()
	s.current = merged
	s.refreshedAt = s.now()
	s.lastErr = nil
	s.mu.Unlock()

	metrics.RecordSettingsRefresh(true)
	s.logger.Debug("frontend settings refreshed", slog.Int("flags", len(merged.FeatureFlags)))
	return nil
}

// Current returns a copy of the active snapshot.
func (s *Service) Current() entity.FrontendSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Enabled reports whether flag is on in the active snapshot.
func (s *Service) Enabled(flag string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Enabled(flag)
}

// DetailsAvailable reports whether detail lookups for r may be shown.
// Setting the resource's lookup-details flag withholds them.
func (s *Service) DetailsAvailable(r entity.ResourceType) bool {
	flag := entity.DetailsFlag(r)
	return flag == "" || !s.Enabled(flag)
}

// Status describes the freshness of the snapshot.
type Status struct {
	RefreshedAt time.Time
	LastError   error
}

// Status returns when the snapshot was last refreshed and the last error.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{RefreshedAt: s.refreshedAt, LastError: s.lastErr}
}
