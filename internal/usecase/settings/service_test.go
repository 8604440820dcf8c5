package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provider-directory/internal/domain/entity"
)

type stubRepo struct {
	settings *entity.FrontendSettings
	err      error
	calls    int
}

func (s *stubRepo) FrontendSettings(context.Context) (*entity.FrontendSettings, error) {
	s.calls++
	return s.settings, s.err
}

func TestService_DefaultsBeforeRefresh(t *testing.T) {
	svc := NewService(&stubRepo{}, entity.FrontendSettings{
		FeatureFlags: map[string]bool{entity.FlagSearch: true},
	}, nil)

	assert.True(t, svc.Enabled(entity.FlagSearch))
	assert.True(t, svc.DetailsAvailable(entity.ResourceOrganization))
	assert.True(t, svc.Status().RefreshedAt.IsZero())
}

func TestService_Refresh(t *testing.T) {
	// Arrange
	repo := &stubRepo{settings: &entity.FrontendSettings{
		RequireAuthentication: true,
		FeatureFlags:          map[string]bool{entity.FlagOrganizationLookupDetails: true},
	}}
	svc := NewService(repo, entity.FrontendSettings{
		FeatureFlags: map[string]bool{entity.FlagSearch: true, entity.FlagOrganizationLookupDetails: false},
	}, nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// Act
	err := svc.Refresh(context.Background())

	// Assert
	require.NoError(t, err)
	cur := svc.Current()
	assert.True(t, cur.RequireAuthentication)
	assert.True(t, cur.Enabled(entity.FlagOrganizationLookupDetails), "backend value wins")
	assert.True(t, cur.Enabled(entity.FlagSearch), "default fills missing flag")
	assert.False(t, svc.DetailsAvailable(entity.ResourceOrganization))
	assert.True(t, svc.DetailsAvailable(entity.ResourcePractitioner))
	assert.Equal(t, now, svc.Status().RefreshedAt)
}

func TestService_RefreshFailureKeepsSnapshot(t *testing.T) {
	repo := &stubRepo{settings: &entity.FrontendSettings{
		FeatureFlags: map[string]bool{entity.FlagPractitionerLookupDetails: true},
	}}
	svc := NewService(repo, entity.FrontendSettings{}, nil)
	require.NoError(t, svc.Refresh(context.Background()))

	boom := errors.New("backend down")
	repo.settings, repo.err = nil, boom

	err := svc.Refresh(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.True(t, svc.Enabled(entity.FlagPractitionerLookupDetails))
	assert.ErrorIs(t, svc.Status().LastError, boom)
}

func TestService_CurrentIsACopy(t *testing.T) {
	svc := NewService(&stubRepo{}, entity.FrontendSettings{
		FeatureFlags: map[string]bool{entity.FlagSearch: true},
	}, nil)

	cur := svc.Current()
	cur.FeatureFlags[entity.FlagSearch] = false

	assert.True(t, svc.Enabled(entity.FlagSearch))
}
