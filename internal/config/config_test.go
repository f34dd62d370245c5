package config

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backend != "mock" {
		t.Errorf("Default backend = %q, want mock", cfg.Backend)
	}
	if cfg.APIEndpoint != DefaultAPIEndpoint {
		t.Errorf("Default endpoint = %q", cfg.APIEndpoint)
	}
	if cfg.SelfHostedURL != "http://localhost:5001" {
		t.Errorf("Default server URL = %q", cfg.SelfHostedURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("Default timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Default log level = %q", cfg.LogLevel)
	}
	if cfg.MockDelay != 2*time.Second {
		t.Errorf("Default mock delay = %v", cfg.MockDelay)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PARTSCOUT_BACKEND", "server")
	t.Setenv("PARTSCOUT_SERVER_URL", "http://scraper.lan:8080")
	t.Setenv("PARTSCOUT_USER_AGENT", "CustomAgent/2.0")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backend != "server" {
		t.Errorf("Backend = %q, want server", cfg.Backend)
	}
	if cfg.SelfHostedURL != "http://scraper.lan:8080" {
		t.Errorf("Server URL = %q", cfg.SelfHostedURL)
	}
	if cfg.UserAgent != "CustomAgent/2.0" {
		t.Errorf("User agent = %q", cfg.UserAgent)
	}
}

func TestLoad_FlagsBeatEnvironment(t *testing.T) {
	t.Setenv("PARTSCOUT_BACKEND", "server")

	cmd := &cobra.Command{Use: "test"}
	RegisterFlags(cmd)
	if err := cmd.ParseFlags([]string{"--backend", "browser", "--timeout", "45s"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backend != "browser" {
		t.Errorf("Changed flag should beat env var, got %q", cfg.Backend)
	}
	if cfg.HTTPTimeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.HTTPTimeout)
	}
}

func TestLoad_VerboseFlagRaisesLogLevel(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	RegisterFlags(cmd)
	if err := cmd.ParseFlags([]string{"--verbose"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Log level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("PARTSCOUT_BACKEND", "selenium")
	if _, err := Load(nil); err == nil {
		t.Error("Unknown backend should fail validation")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			HTTPTimeout:     time.Second,
			Backend:         "mock",
			RateLimitRPS:    1.0,
			CacheMaxEntries: 8,
		}
	}

	if err := validate(base()); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}

	c := base()
	c.HTTPTimeout = 0
	if err := validate(c); err == nil {
		t.Error("Zero timeout should fail")
	}

	c = base()
	c.RateLimitRPS = -1
	if err := validate(c); err == nil {
		t.Error("Negative RPS should fail")
	}

	c = base()
	c.CacheMaxEntries = 0
	if err := validate(c); err == nil {
		t.Error("Zero cache entries should fail")
	}
}
