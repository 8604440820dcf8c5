package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provider-directory/internal/domain/entity"
	pkgconfig "provider-directory/pkg/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "npd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("NPD_API_BASE_URL", "https://npd.example.org")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "https://npd.example.org", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.InDelta(t, 20.0, cfg.BackendRPS, 1e-9)
	assert.Equal(t, 40, cfg.BackendBurst)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "@every 1m", cfg.SessionSweepSchedule)
	assert.Equal(t, "@every 5m", cfg.SettingsRefreshSchedule)
	assert.Empty(t, cfg.FeatureFlags)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_RequiresBaseURL(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("NPD_API_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NPD_API_BASE_URL is required")
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfigFile(t, `
addr: ":9090"
api_base_url: "https://file.example.org/api"
http_timeout: 3s
cache_ttl: 0s
session_ttl: 45m
feature_flags:
  ORGANIZATION_LOOKUP_DETAILS: true
  SEARCH: false
route_flags:
  practitioners: SEARCH
tracing:
  enabled: true
  sample_ratio: 0.25
`)
	t.Setenv(EnvConfigFile, path)
	t.Setenv("NPD_API_BASE_URL", "")
	t.Setenv("NPD_ADDR", ":7070")
	t.Setenv("NPD_FEATURE_FLAGS", "PRACTITIONER_LOOKUP_DETAILS")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr, "env wins over the file")
	assert.Equal(t, "https://file.example.org/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL, "zero in the file keeps the default")
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.Equal(t, map[string]bool{
		"ORGANIZATION_LOOKUP_DETAILS": true,
		"SEARCH":                      false,
		"PRACTITIONER_LOOKUP_DETAILS": true,
	}, cfg.FeatureFlags)
	assert.True(t, cfg.Tracing.Enabled)
	assert.InDelta(t, 0.25, cfg.Tracing.SampleRatio, 1e-9)

	flag, ok := cfg.RouteFlag(entity.ResourcePractitioner)
	assert.True(t, ok)
	assert.Equal(t, "SEARCH", flag)
	_, ok = cfg.RouteFlag(entity.ResourceOrganization)
	assert.False(t, ok)
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := Default()
	err := cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	err = cfg.LoadFile(writeConfigFile(t, "addr: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := Default()
	cfg.APIBaseURL = "ftp://npd.example.org"
	cfg.HTTPTimeout = 0
	cfg.BackendRPS = 5
	cfg.BackendBurst = 0
	cfg.SessionSweepSchedule = "sometimes"
	cfg.SessionTTL = 10 * time.Second
	cfg.RouteFlags = map[string]string{"hospitals": "SEARCH"}
	cfg.Tracing.SampleRatio = 1.5

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"NPD_API_BASE_URL",
		"NPD_HTTP_TIMEOUT",
		"NPD_BACKEND_BURST",
		"NPD_SESSION_SWEEP_SCHEDULE",
		"NPD_SESSION_TTL",
		"route_flags",
		"NPD_TRACING_SAMPLE_RATIO",
	} {
		assert.Contains(t, err.Error(), want)
	}
	assert.ErrorIs(t, err, entity.ErrUnknownResource)
	assert.ErrorIs(t, err, pkgconfig.ErrInvalidDuration)
}

func TestValidate_ZeroRPSDisablesLimiter(t *testing.T) {
	cfg := Default()
	cfg.APIBaseURL = "http://localhost:8000"
	cfg.BackendRPS = 0
	cfg.BackendBurst = 0
	assert.NoError(t, cfg.Validate())
}
