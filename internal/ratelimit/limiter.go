// Package ratelimit throttles outbound requests per target host so the
// tool stays polite toward marketplaces and the scraping API.
package ratelimit

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter controls request pacing, typically per host.
type RateLimiter interface {
	// Wait blocks until a request to the URL may proceed, or the context
	// is cancelled.
	Wait(ctx context.Context, urlStr string) error

	// Allow reports whether a request may proceed immediately.
	Allow(urlStr string) bool
}

// DomainLimiter applies a token bucket per host.
type DomainLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	perHost  rate.Limit
	burst    int
}

// NewDomainLimiter creates a limiter allowing requestsPerSecond with the
// given burst per host.
func NewDomainLimiter(requestsPerSecond float64, burst int) *DomainLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2.0
	}
	if burst <= 0 {
		burst = 4
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (dl *DomainLimiter) Wait(ctx context.Context, urlStr string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	host := extractHost(urlStr)
	if host == "" {
		// Invalid URL; let it proceed and fail elsewhere.
		return nil
	}
	return dl.getLimiter(host).Wait(ctx)
}

func (dl *DomainLimiter) Allow(urlStr string) bool {
	host := extractHost(urlStr)
	if host == "" {
		return true
	}
	return dl.getLimiter(host).Allow()
}

func (dl *DomainLimiter) getLimiter(host string) *rate.Limiter {
	dl.mu.RLock()
	limiter, ok := dl.limiters[host]
	dl.mu.RUnlock()
	if ok {
		return limiter
	}

	dl.mu.Lock()
	defer dl.mu.Unlock()
	if limiter, ok := dl.limiters[host]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(dl.perHost, dl.burst)
	dl.limiters[host] = limiter
	return limiter
}

func extractHost(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
