// Package session owns the dashboard state: the current result set, the
// current usage counters, and the request sequencing that keeps a slow
// in-flight scrape from overwriting a newer one.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/partscout/partscout/internal/backend"
	"github.com/partscout/partscout/internal/urlutil"
	"github.com/partscout/partscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// Request bounds enforced before any backend call.
const (
	MinResults = 1
	MaxResults = 50
)

// Session serializes commits of scrape responses. Each scrape action gets
// a monotonically increasing generation; only a response carrying the most
// recent generation may become the current result set (last write wins,
// stale responses are discarded).
type Session struct {
	mu      sync.Mutex
	latest  uint64
	results *models.ScrapeResponse
	usage   *models.UsageInfo
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// Begin registers a new scrape action and returns its generation token.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Commit installs resp as the current result set if gen still names the
// most recent scrape action. It returns false, leaving state untouched,
// when a newer action has begun since gen was issued. Failure envelopes
// never overwrite the current results; their usage counters are kept only
// when the response is committed.
func (s *Session) Commit(gen uint64, resp *models.ScrapeResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.latest {
		log.Debug().
			Uint64("generation", gen).
			Uint64("latest", s.latest).
			Msg("Stale scrape response discarded")
		return false
	}
	if resp == nil || !resp.Success {
		return false
	}
	s.results = resp
	if resp.Usage != nil {
		s.usage = resp.Usage
	}
	return true
}

// Current returns the committed result set and usage counters; either may
// be nil before the first successful scrape.
func (s *Session) Current() (*models.ScrapeResponse, *models.UsageInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results, s.usage
}

// ValidateRequest performs the caller-side checks the backends rely on:
// non-empty term and field list, sane bounds, a syntactically valid target
// URL, and a credential for backends that demand one up front.
func ValidateRequest(req models.ScrapeRequest, kind backend.Kind) error {
	if strings.TrimSpace(req.SearchTerm) == "" {
		return errors.New("search term must not be empty")
	}
	if len(req.ExtractFields) == 0 {
		return errors.New("at least one extract field is required")
	}
	seen := make(map[string]bool, len(req.ExtractFields))
	for _, f := range req.ExtractFields {
		if strings.TrimSpace(f) == "" {
			return errors.New("extract fields must not be empty strings")
		}
		if seen[f] {
			return fmt.Errorf("duplicate extract field %q", f)
		}
		seen[f] = true
	}
	if req.MaxResults < MinResults || req.MaxResults > MaxResults {
		return fmt.Errorf("max results must be between %d and %d", MinResults, MaxResults)
	}
	if err := urlutil.Validate(req.WebsiteURL); err != nil {
		return fmt.Errorf("website: %w", err)
	}
	if kind == backend.KindAPI && strings.TrimSpace(req.APIKey) == "" {
		return errors.New("the api backend requires an API key; set one with 'partscout key set' or --api-key")
	}
	return nil
}
