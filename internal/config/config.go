package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout time.Duration
	UserAgent   string
	Proxy       string

	// Backend selection and endpoints
	Backend       string
	APIEndpoint   string
	CountryCode   string
	SelfHostedURL string
	MockDelay     time.Duration

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Rendered-page cache
	CacheTTL        time.Duration
	CacheMaxEntries int

	// Browser backend
	BrowserHeadless bool
}

// Load builds a Config from defaults, environment variables (PARTSCOUT_*),
// and CLI flags, in increasing precedence. Pass the root *cobra.Command so
// flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		HTTPTimeout:     DefaultHTTPTimeout,
		UserAgent:       DefaultUserAgent,
		Backend:         DefaultBackend,
		APIEndpoint:     DefaultAPIEndpoint,
		CountryCode:     DefaultCountryCode,
		SelfHostedURL:   DefaultSelfHostedURL,
		MockDelay:       DefaultMockDelay,
		RateLimitRPS:    DefaultRateLimitRPS,
		RateLimitBurst:  DefaultRateLimitBurst,
		CacheTTL:        DefaultCacheTTL,
		CacheMaxEntries: DefaultCacheMaxEntries,
		BrowserHeadless: DefaultBrowserHeadless,
	}

	if v := os.Getenv("PARTSCOUT_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("PARTSCOUT_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("PARTSCOUT_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("PARTSCOUT_API_ENDPOINT"); v != "" {
		cfg.APIEndpoint = v
	}
	if v := os.Getenv("PARTSCOUT_SERVER_URL"); v != "" {
		cfg.SelfHostedURL = v
	}

	if cmd != nil {
		if f := cmd.Flags().Lookup("backend"); f != nil && f.Changed {
			cfg.Backend = f.Value.String()
		}
		if f := cmd.Flags().Lookup("endpoint"); f != nil && f.Changed {
			cfg.APIEndpoint = f.Value.String()
		}
		if f := cmd.Flags().Lookup("server-url"); f != nil && f.Changed {
			cfg.SelfHostedURL = f.Value.String()
		}
		if f := cmd.Flags().Lookup("proxy"); f != nil && f.Changed {
			cfg.Proxy = f.Value.String()
		}
		if f := cmd.Flags().Lookup("user-agent"); f != nil && f.Changed {
			cfg.UserAgent = f.Value.String()
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.HTTPTimeout = d
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil && f.Value.String() == "true" {
			cfg.JSONLog = true
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
