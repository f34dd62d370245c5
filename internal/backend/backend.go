// Package backend defines the uniform scraping contract and its
// interchangeable implementations: the hosted scraping API, a self-hosted
// scraping service, a local headless browser, and a mock generator.
package backend

import (
	"context"
	"fmt"

	"github.com/partscout/partscout/pkg/models"
)

// Backend is the single contract every scraping implementation satisfies.
// Scrape never panics and never returns a Go error across the boundary:
// every failure path resolves to a Failure envelope with an actionable
// reason string.
type Backend interface {
	// Scrape runs one product search and returns the normalized envelope.
	Scrape(ctx context.Context, req models.ScrapeRequest) *models.ScrapeResponse

	// Name returns the backend identifier used in logs and CLI flags.
	Name() string
}

// AvailabilityChecker is implemented by networked backends. The probe is
// lightweight and returns false on any error rather than raising.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context) bool
}

// CredentialValidator is implemented by backends that require a key.
// Network failures report as invalid with a "connection failed" reason,
// never as a propagated error.
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, key string) models.CredentialStatus
}

// Kind selects a backend implementation by configuration.
type Kind string

const (
	KindMock       Kind = "mock"
	KindAPI        Kind = "api"
	KindSelfHosted Kind = "server"
	KindBrowser    Kind = "browser"
)

// ParseKind validates a --backend flag value.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMock, KindAPI, KindSelfHosted, KindBrowser:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown backend %q (must be mock, api, server, or browser)", s)
}
