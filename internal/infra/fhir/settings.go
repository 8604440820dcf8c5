package fhir

import (
	"context"

	"provider-directory/internal/domain/entity"
	"provider-directory/internal/repository"
)

const settingsPath = "/frontend_settings"

// SettingsAPI reads the backend's frontend settings.
type SettingsAPI struct {
	client *Client
}

var _ repository.SettingsRepository = (*SettingsAPI)(nil)

// NewSettingsAPI creates a settings reader. The client should carry the
// settings breaker and retry policy.
func NewSettingsAPI(client *Client) *SettingsAPI {
	return &SettingsAPI{client: client}
}

// FrontendSettings fetches the current settings.
func (s *SettingsAPI) FrontendSettings(ctx context.Context) (*entity.FrontendSettings, error) {
	var out entity.FrontendSettings
	if err := s.client.getJSON(ctx, "settings", settingsPath, nil, nil, &out); err != nil {
		return nil, err
	}
	if out.FeatureFlags == nil {
		out.FeatureFlags = map[string]bool{}
	}
	return &out, nil
}
