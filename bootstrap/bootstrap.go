// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	gatehttp "github.com/medplant/plantgate/adapters/http"
	"github.com/medplant/plantgate/adapters/metrics"
	"github.com/medplant/plantgate/adapters/upstream"
	"github.com/medplant/plantgate/config"
)

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Config
	Holder     *config.Holder // non-nil when hot reload is enabled
	HTTPServer *http.Server
	Metrics    *metrics.Collector

	upstream *swappableUpstream
}

// New creates and initializes the application from a loaded config.
func New(cfg *config.Config) (*App, error) {
	logger := setupLogger(cfg.Logging)

	a := &App{
		Logger: logger,
		Config: cfg,
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		logger.Info().Msg("prometheus metrics enabled")
	}

	if err := a.initHTTPServer(cfg); err != nil {
		return nil, fmt.Errorf("init http server: %w", err)
	}

	return a, nil
}

// NewWithHotReload creates the application with config file watching.
// Reloadable fields (upstream URL and timeouts, session cookie
// attributes, log level) take effect without a restart; server address
// and feature toggles do not.
func NewWithHotReload(path string) (*App, error) {
	logger := setupLogger(config.LoggingConfig{Level: "info", Format: "json"})

	holder, err := config.NewHolder(path, logger)
	if err != nil {
		return nil, err
	}

	a, err := New(holder.Get())
	if err != nil {
		holder.Stop()
		return nil, err
	}
	a.Holder = holder

	holder.OnChange(a.applyConfig)

	if err := holder.WatchFile(); err != nil {
		a.Logger.Warn().Err(err).Msg("config file watching unavailable")
	}
	holder.WatchSignals()

	return a, nil
}

func (a *App) initHTTPServer(cfg *config.Config) error {
	client, err := newUpstreamClient(cfg, a.Logger, a.Metrics)
	if err != nil {
		return err
	}
	a.upstream = &swappableUpstream{client: client}

	handler := gatehttp.NewHandler(gatehttp.Deps{
		Upstream: a.upstream,
		Cookie: gatehttp.CookieConfig{
			Name:     cfg.Session.CookieName,
			MaxAge:   cfg.Session.MaxAge,
			Secure:   cfg.Session.Secure,
			SameSite: sameSiteMode(cfg.Session.SameSite),
		},
		Logger:  a.Logger,
		Metrics: a.Metrics,
	})

	router := gatehttp.NewRouter(handler, a.Logger, gatehttp.RouterConfig{
		Metrics:       a.Metrics,
		MetricsPath:   cfg.Metrics.Path,
		EnableOpenAPI: cfg.OpenAPI.Enabled,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	a.HTTPServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	a.Logger.Info().
		Str("addr", addr).
		Str("upstream", cfg.Upstream.URL).
		Msg("http server configured")
	return nil
}

// applyConfig handles a config reload: the upstream client is rebuilt
// so URL and timeout changes take effect on the next request. The
// server address and cookie policy of in-flight handlers stay as they
// were; those fields need a restart.
func (a *App) applyConfig(cfg *config.Config) {
	client, err := newUpstreamClient(cfg, a.Logger, a.Metrics)
	if err != nil {
		a.Logger.Error().Err(err).Msg("rebuild upstream client failed, keeping previous")
		if a.Metrics != nil {
			a.Metrics.ConfigReloadErrors.Inc()
		}
		return
	}

	a.upstream.swap(client)
	a.Config = cfg

	if a.Metrics != nil {
		a.Metrics.ConfigReloads.Inc()
	}
	a.Logger.Info().Str("upstream", cfg.Upstream.URL).Msg("upstream client rebuilt")
}

func newUpstreamClient(cfg *config.Config, logger zerolog.Logger, m *metrics.Collector) (*upstream.Client, error) {
	client, err := upstream.New(upstream.Config{
		BaseURL:         cfg.Upstream.URL,
		Timeout:         cfg.Upstream.Timeout,
		IdentifyTimeout: cfg.Upstream.IdentifyTimeout,
		MaxIdleConns:    cfg.Upstream.MaxIdleConns,
		IdleConnTimeout: cfg.Upstream.IdleConnTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build upstream client: %w", err)
	}
	if m != nil {
		client.SetMetrics(m)
	}
	return client, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", a.HTTPServer.Addr).Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.Holder != nil {
		a.Holder.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func sameSiteMode(v string) http.SameSite {
	if v == "strict" {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}
