// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/partscout/partscout/internal/backend"
	"github.com/partscout/partscout/internal/cache"
	"github.com/partscout/partscout/internal/config"
	"github.com/partscout/partscout/internal/ratelimit"
	"github.com/partscout/partscout/internal/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all dependencies shared across CLI commands. It is
// created once per invocation; Close releases transport resources.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	Cache       cache.Cache
	RateLimiter ratelimit.RateLimiter
	HTTPClient  *http.Client
	Session     *session.Session

	// Backends, all constructed up front; Backend is the configured one.
	Mock       *backend.MockBackend
	API        *backend.APIBackend
	SelfHosted *backend.SelfHostedBackend
	Browser    *backend.BrowserBackend
	Backend    backend.Backend

	startTime time.Time
}

// New creates and initializes an Application from the loaded config:
// logger, page cache, per-host rate limiter, shared HTTP client, the four
// backend adapters, and the session controller.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.ErrorLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	pageCache := cache.NewMemoryCache(cfg.CacheTTL, cfg.CacheMaxEntries)
	limiter := ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	a := &Application{
		Config:      cfg,
		Logger:      &logger,
		Cache:       pageCache,
		RateLimiter: limiter,
		HTTPClient:  httpClient,
		Session:     session.New(),
		Mock:        backend.NewMockBackend(cfg.MockDelay),
		API:         backend.NewAPIBackend(cfg.APIEndpoint, cfg.CountryCode, httpClient, limiter, cfg.HTTPTimeout),
		SelfHosted:  backend.NewSelfHostedBackend(cfg.SelfHostedURL, httpClient),
		Browser:     backend.NewBrowserBackend(pageCache, limiter, cfg.HTTPTimeout, cfg.UserAgent, cfg.Proxy, cfg.BrowserHeadless),
		startTime:   time.Now(),
	}

	kind, err := backend.ParseKind(cfg.Backend)
	if err != nil {
		return nil, err
	}
	a.Backend = a.BackendFor(kind)

	logger.Debug().
		Str("backend", a.Backend.Name()).
		Dur("timeout", cfg.HTTPTimeout).
		Msg("Application initialized")
	return a, nil
}

// BackendFor returns the adapter for a backend kind.
func (a *Application) BackendFor(kind backend.Kind) backend.Backend {
	switch kind {
	case backend.KindAPI:
		return a.API
	case backend.KindSelfHosted:
		return a.SelfHosted
	case backend.KindBrowser:
		return a.Browser
	default:
		return a.Mock
	}
}

// Close releases application resources.
func (a *Application) Close(ctx context.Context) error {
	if a.Cache != nil {
		a.Cache.Clear()
	}
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}
	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
