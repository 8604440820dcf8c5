// Package config loads the provider directory application configuration
// from defaults, an optional YAML file and environment variables, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"provider-directory/internal/domain/entity"
	pkgconfig "provider-directory/pkg/config"
)

// EnvConfigFile names the optional YAML overlay.
const EnvConfigFile = "NPD_CONFIG_FILE"

// Bounds on how long an idle search session is kept.
const (
	minSessionTTL = time.Minute
	maxSessionTTL = 24 * time.Hour
)

// AppConfig is the configuration of the directory server and CLI.
type AppConfig struct {
	Addr        string        `yaml:"addr"`
	APIBaseURL  string        `yaml:"api_base_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// RequestTimeout bounds an inbound request, including session reads
	// that wait for a search to settle. Zero disables it.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	BackendRPS   float64 `yaml:"backend_rps"`
	BackendBurst int     `yaml:"backend_burst"`

	CacheTTL time.Duration `yaml:"cache_ttl"`

	SessionTTL              time.Duration `yaml:"session_ttl"`
	SessionSweepSchedule    string        `yaml:"session_sweep_schedule"`
	SettingsRefreshSchedule string        `yaml:"settings_refresh_schedule"`

	// FeatureFlags are used until the backend settings have been fetched,
	// and for any flag the backend omits.
	FeatureFlags map[string]bool `yaml:"feature_flags"`

	// RouteFlags gates a resource's routes behind a flag, keyed by
	// collection name ("organizations").
	RouteFlags map[string]string `yaml:"route_flags"`

	Tracing TracingConfig `yaml:"tracing"`
}

// TracingConfig controls the OpenTelemetry tracer provider.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Default returns the configuration used when nothing is set.
// APIBaseURL has no default and must be supplied.
func Default() *AppConfig {
	return &AppConfig{
		Addr:                    ":8080",
		HTTPTimeout:             10 * time.Second,
		RequestTimeout:          30 * time.Second,
		BackendRPS:              20,
		BackendBurst:            40,
		CacheTTL:                5 * time.Minute,
		SessionTTL:              30 * time.Minute,
		SessionSweepSchedule:    "@every 1m",
		SettingsRefreshSchedule: "@every 5m",
		FeatureFlags:            map[string]bool{},
		RouteFlags:              map[string]string{},
		Tracing: TracingConfig{
			SampleRatio: 1.0,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// NPD_CONFIG_FILE if set, then environment variables.
func Load() (*AppConfig, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto c. Keys missing from the
// file keep their current values; maps are merged.
func (c *AppConfig) LoadFile(path string) error {
	// #nosec G304 -- path comes from the operator's environment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var overlay AppConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.merge(&overlay)
	return nil
}

// ApplyEnv overrides c with any NPD_* environment variables that are set.
func (c *AppConfig) ApplyEnv() {
	c.Addr = pkgconfig.GetEnvString("NPD_ADDR", c.Addr)
	c.APIBaseURL = pkgconfig.GetEnvString("NPD_API_BASE_URL", c.APIBaseURL)
	c.HTTPTimeout = pkgconfig.GetEnvDuration("NPD_HTTP_TIMEOUT", c.HTTPTimeout)
	c.RequestTimeout = pkgconfig.GetEnvDuration("NPD_REQUEST_TIMEOUT", c.RequestTimeout)
	c.BackendRPS = pkgconfig.GetEnvFloat("NPD_BACKEND_RPS", c.BackendRPS)
	c.BackendBurst = pkgconfig.GetEnvInt("NPD_BACKEND_BURST", c.BackendBurst)
	c.CacheTTL = pkgconfig.GetEnvDuration("NPD_CACHE_TTL", c.CacheTTL)
	c.SessionTTL = pkgconfig.GetEnvDuration("NPD_SESSION_TTL", c.SessionTTL)
	c.SessionSweepSchedule = pkgconfig.GetEnvString("NPD_SESSION_SWEEP_SCHEDULE", c.SessionSweepSchedule)
	c.SettingsRefreshSchedule = pkgconfig.GetEnvString("NPD_SETTINGS_REFRESH_SCHEDULE", c.SettingsRefreshSchedule)
	c.Tracing.Enabled = pkgconfig.GetEnvBool("NPD_TRACING_ENABLED", c.Tracing.Enabled)
	c.Tracing.SampleRatio = pkgconfig.GetEnvFloat("NPD_TRACING_SAMPLE_RATIO", c.Tracing.SampleRatio)

	for _, name := range pkgconfig.GetEnvStringList("NPD_FEATURE_FLAGS", nil) {
		if c.FeatureFlags == nil {
			c.FeatureFlags = map[string]bool{}
		}
		c.FeatureFlags[name] = true
	}
}

// Validate reports every invalid field at once.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("NPD_ADDR cannot be empty"))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("NPD_API_BASE_URL is required"))
	} else if err := entity.ValidateBaseURL(c.APIBaseURL); err != nil {
		errs = append(errs, fmt.Errorf("NPD_API_BASE_URL: %w", err))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.HTTPTimeout); err != nil {
		errs = append(errs, fmt.Errorf("NPD_HTTP_TIMEOUT: %w", err))
	}
	if err := pkgconfig.ValidateNonNegativeDuration(c.RequestTimeout); err != nil {
		errs = append(errs, fmt.Errorf("NPD_REQUEST_TIMEOUT: %w", err))
	}
	if c.BackendRPS < 0 {
		errs = append(errs, fmt.Errorf("NPD_BACKEND_RPS must be non-negative, got %v", c.BackendRPS))
	}
	if c.BackendRPS > 0 && c.BackendBurst < 1 {
		errs = append(errs, fmt.Errorf("NPD_BACKEND_BURST must be at least 1, got %d", c.BackendBurst))
	}
	if err := pkgconfig.ValidateNonNegativeDuration(c.CacheTTL); err != nil {
		errs = append(errs, fmt.Errorf("NPD_CACHE_TTL: %w", err))
	}
	if err := pkgconfig.ValidateDurationRange(c.SessionTTL, minSessionTTL, maxSessionTTL); err != nil {
		errs = append(errs, fmt.Errorf("NPD_SESSION_TTL: %w", err))
	}
	if err := pkgconfig.ValidateCronSchedule(c.SessionSweepSchedule); err != nil {
		errs = append(errs, fmt.Errorf("NPD_SESSION_SWEEP_SCHEDULE: %w", err))
	}
	if err := pkgconfig.ValidateCronSchedule(c.SettingsRefreshSchedule); err != nil {
		errs = append(errs, fmt.Errorf("NPD_SETTINGS_REFRESH_SCHEDULE: %w", err))
	}
	for collection := range c.RouteFlags {
		if _, err := entity.ParseResourceType(collection); err != nil {
			errs = append(errs, fmt.Errorf("route_flags: %w", err))
		}
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("NPD_TRACING_SAMPLE_RATIO must be between 0.0 and 1.0, got %v", c.Tracing.SampleRatio))
	}
	return errors.Join(errs...)
}

// RouteFlag returns the flag gating r's routes, if any.
func (c *AppConfig) RouteFlag(r entity.ResourceType) (string, bool) {
	flag, ok := c.RouteFlags[r.Collection()]
	return flag, ok && flag != ""
}

func (c *AppConfig) merge(o *AppConfig) {
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.APIBaseURL != "" {
		c.APIBaseURL = o.APIBaseURL
	}
	if o.HTTPTimeout != 0 {
		c.HTTPTimeout = o.HTTPTimeout
	}
	if o.RequestTimeout != 0 {
		c.RequestTimeout = o.RequestTimeout
	}
	if o.BackendRPS != 0 {
		c.BackendRPS = o.BackendRPS
	}
	if o.BackendBurst != 0 {
		c.BackendBurst = o.BackendBurst
	}
	if o.CacheTTL != 0 {
		c.CacheTTL = o.CacheTTL
	}
	if o.SessionTTL != 0 {
		c.SessionTTL = o.SessionTTL
	}
	if o.SessionSweepSchedule != "" {
		c.SessionSweepSchedule = o.SessionSweepSchedule
	}
	if o.SettingsRefreshSchedule != "" {
		c.SettingsRefreshSchedule = o.SettingsRefreshSchedule
	}
	if c.FeatureFlags == nil {
		c.FeatureFlags = map[string]bool{}
	}
	for k, v := range o.FeatureFlags {
		c.FeatureFlags[k] = v
	}
	if c.RouteFlags == nil {
		c.RouteFlags = map[string]string{}
	}
	for k, v := range o.RouteFlags {
		c.RouteFlags[k] = v
	}
	if o.Tracing.Enabled {
		c.Tracing.Enabled = true
	}
	if o.Tracing.SampleRatio != 0 {
		c.Tracing.SampleRatio = o.Tracing.SampleRatio
	}
}
