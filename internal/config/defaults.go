package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel  = "info"
	DefaultJSONLog   = false
	DefaultUserAgent = "Partscout/1.0 (https://github.com/partscout/partscout)"

	DefaultHTTPTimeout = 30 * time.Second

	DefaultBackend       = "mock"
	DefaultAPIEndpoint   = "https://app.scrapingbee.com/api/v1/"
	DefaultCountryCode   = "us"
	DefaultSelfHostedURL = "http://localhost:5001"
	DefaultMockDelay     = 2 * time.Second

	DefaultRateLimitRPS   = 2.0
	DefaultRateLimitBurst = 4

	DefaultCacheTTL        = 5 * time.Minute
	DefaultCacheMaxEntries = 32

	DefaultBrowserHeadless = true
)
