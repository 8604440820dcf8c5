package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"provider-directory/internal/common/pagination"
	"provider-directory/internal/config"
	"provider-directory/internal/domain/entity"
	"provider-directory/internal/infra/fhir"
	"provider-directory/internal/observability/logging"
	"provider-directory/internal/observability/tracing"
	"provider-directory/internal/resilience/circuitbreaker"
	"provider-directory/internal/resilience/retry"
	searchUC "provider-directory/internal/usecase/search"
	settingsUC "provider-directory/internal/usecase/settings"
	pkgconfig "provider-directory/pkg/config"

	hhttp "provider-directory/internal/handler/http"
	hdirectory "provider-directory/internal/handler/http/directory"
	"provider-directory/internal/handler/http/requestid"
	hsearch "provider-directory/internal/handler/http/search"
	hsettings "provider-directory/internal/handler/http/settings"
)

const serviceName = "provider-directory"

func main() {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	paginationCfg := pagination.LoadFromEnv()
	version := pkgconfig.GetEnvString("VERSION", "dev")

	if cfg.Tracing.Enabled {
		shutdown := tracing.InitProvider(serviceName, cfg.Tracing.SampleRatio)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Error("tracer shutdown failed", slog.Any("error", err))
			}
		}()
		logger.Info("tracing enabled", slog.Float64("sample_ratio", cfg.Tracing.SampleRatio))
	}

	app, err := setupServer(logger, cfg, paginationCfg, version)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}
	if err := runServer(logger, cfg, app, version); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes the JSON logger and installs it as the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// ServerComponents holds what the server needs at run time and on shutdown.
type ServerComponents struct {
	Handler  http.Handler
	Sessions *searchUC.Registry
	Settings *settingsUC.Service
	Draining *atomic.Bool
}

// setupServer wires the backend adapters, the search sessions and every route.
func setupServer(logger *slog.Logger, cfg *config.AppConfig, paginationCfg pagination.Config, version string) (*ServerComponents, error) {
	backendCfg := fhir.DefaultConfig(cfg.APIBaseURL)
	backendCfg.Timeout = cfg.HTTPTimeout
	backendCfg.RequestsPerSecond = cfg.BackendRPS
	backendCfg.Burst = cfg.BackendBurst
	backend, err := fhir.NewClient(backendCfg, fhir.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	settingsCfg := backendCfg
	settingsCfg.Retry = retry.SettingsAPIConfig()
	settingsCfg.Breaker = circuitbreaker.SettingsAPIConfig()
	settingsBackend, err := fhir.NewClient(settingsCfg, fhir.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	organizations := fhir.NewOrganizationAPI(backend, paginationCfg, cfg.CacheTTL)
	practitioners := fhir.NewPractitionerAPI(backend, paginationCfg, cfg.CacheTTL)

	settings := settingsUC.NewService(
		fhir.NewSettingsAPI(settingsBackend),
		entity.FrontendSettings{FeatureFlags: cfg.FeatureFlags},
		logger,
	)

	codec := pagination.NewCodec(paginationCfg)
	factories := map[entity.ResourceType]searchUC.Factory{
		entity.ResourceOrganization: searchUC.NewFactory[entity.Organization](entity.ResourceOrganization, organizations, organizations.Sorts(), codec, logger),
		entity.ResourcePractitioner: searchUC.NewFactory[entity.Practitioner](entity.ResourcePractitioner, practitioners, practitioners.Sorts(), codec, logger),
	}
	sessions := searchUC.NewRegistry(factories, cfg.SessionTTL, logger)

	// A resource whose route flag is off is hidden from listings, lookups
	// and new sessions alike.
	routeEnabled := func(r entity.ResourceType) bool {
		flag, ok := cfg.RouteFlag(r)
		return !ok || settings.Enabled(flag)
	}
	gate := func(r entity.ResourceType, h http.Handler) http.Handler {
		if flag, ok := cfg.RouteFlag(r); ok {
			return hsettings.RequireFlag(settings, flag)(h)
		}
		return h
	}

	draining := &atomic.Bool{}

	mux := http.NewServeMux()
	mux.Handle("GET    /health", &hhttp.HealthHandler{
		Version: version,
		Checks: map[string]hhttp.HealthCheck{
			"backend":          hhttp.BreakerCheck(backend.Breaker()),
			"settings_backend": hhttp.BreakerCheck(settingsBackend.Breaker()),
			"settings":         hhttp.SettingsCheck(settings),
			"sessions":         hhttp.SessionsCheck(sessions),
		},
	})
	mux.Handle("GET    /ready", &hhttp.ReadyHandler{Ready: func(context.Context) error {
		if draining.Load() {
			return errors.New("shutting down")
		}
		return nil
	}})
	mux.Handle("GET    /live", hhttp.LiveHandler{})
	mux.Handle("GET    "+hhttp.MetricsPath, hhttp.MetricsHandler())

	hsettings.Register(mux, settings)
	hsearch.Register(mux, sessions, routeEnabled)

	orgMux := http.NewServeMux()
	hdirectory.Register[entity.Organization](orgMux, entity.ResourceOrganization, factories[entity.ResourceOrganization], paginationCfg, organizations, settings.DetailsAvailable)
	pracMux := http.NewServeMux()
	hdirectory.Register[entity.Practitioner](pracMux, entity.ResourcePractitioner, factories[entity.ResourcePractitioner], paginationCfg, practitioners, settings.DetailsAvailable)
	for r, sub := range map[entity.ResourceType]*http.ServeMux{
		entity.ResourceOrganization: orgMux,
		entity.ResourcePractitioner: pracMux,
	} {
		h := gate(r, sub)
		mux.Handle("/"+r.Collection(), h)
		mux.Handle("/"+r.Collection()+"/", h)
	}

	return &ServerComponents{
		Handler:  applyMiddleware(logger, cfg, mux),
		Sessions: sessions,
		Settings: settings,
		Draining: draining,
	}, nil
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → Recovery → Logging → Input validation → Metrics → Timeout
func applyMiddleware(logger *slog.Logger, cfg *config.AppConfig, handler http.Handler) http.Handler {
	return hhttp.Chain(handler,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.InputValidation(),
		hhttp.MetricsMiddleware,
		hhttp.Timeout(cfg.RequestTimeout),
	)
}

// startScheduler runs the session sweeper and the settings refresh.
func startScheduler(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig, app *ServerComponents) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(cfg.SessionSweepSchedule, func() {
		app.Sessions.Sweep()
	}); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(cfg.SettingsRefreshSchedule, func() {
		refreshCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
		defer cancel()
		_ = app.Settings.Refresh(refreshCtx)
	}); err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("scheduler started",
		slog.String("session_sweep", cfg.SessionSweepSchedule),
		slog.String("settings_refresh", cfg.SettingsRefreshSchedule))
	return c, nil
}

// runServer serves until SIGINT or SIGTERM, then drains and shuts down.
func runServer(logger *slog.Logger, cfg *config.AppConfig, app *ServerComponents, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Settings are best effort at startup; defaults apply until a refresh succeeds.
	initCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
	if err := app.Settings.Refresh(initCtx); err != nil {
		logger.Warn("starting with default feature flags", slog.Any("error", err))
	}
	cancel()

	scheduler, err := startScheduler(ctx, logger, cfg, app)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("backend", cfg.APIBaseURL),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		app.Draining.Store(true)

		<-scheduler.Stop().Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		err := srv.Shutdown(shutdownCtx)
		app.Sessions.Close()
		return err
	})

	err = g.Wait()
	logger.Info("server stopped")
	return err
}
