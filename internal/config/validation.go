package config

import "fmt"

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	switch c.Backend {
	case "mock", "api", "server", "browser":
	default:
		return fmt.Errorf("backend must be one of mock, api, server, browser; got %q", c.Backend)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit rps must be > 0")
	}
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("cache max entries must be > 0")
	}
	return nil
}
