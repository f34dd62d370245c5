package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/partscout/partscout/internal/normalize"
	"github.com/partscout/partscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// SelfHostedBackend talks to a locally run scraping service over HTTP:
// GET /health to confirm it is up, POST /api/scrape for the actual work.
type SelfHostedBackend struct {
	baseURL string
	client  *http.Client
}

// NewSelfHostedBackend creates an adapter for the service at baseURL
// (e.g. http://localhost:5001).
func NewSelfHostedBackend(baseURL string, client *http.Client) *SelfHostedBackend {
	return &SelfHostedBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (s *SelfHostedBackend) Name() string {
	return "SelfHostedBackend"
}

// Scrape health-probes first and fails fast with the expected address when
// the service is down, so the user sees "start the server" instead of a
// long downstream timeout.
func (s *SelfHostedBackend) Scrape(ctx context.Context, req models.ScrapeRequest) *models.ScrapeResponse {
	if !s.CheckAvailability(ctx) {
		return models.Failure(fmt.Sprintf(
			"cannot connect to the scraping service at %s; make sure the server is running", s.baseURL))
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return models.Failure("failed to encode scrape request: " + err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/scrape", bytes.NewReader(payload))
	if err != nil {
		return models.Failure("failed to build scrape request: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return models.Failure(fmt.Sprintf("scraping service at %s did not respond: %v", s.baseURL, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Failure("failed to read scraping service response: " + err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Failure(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var envelope models.ScrapeResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return models.Failure("invalid JSON from scraping service: " + err.Error())
	}
	if !envelope.Success {
		reason := envelope.Error
		if reason == "" {
			reason = "scraping service reported an unspecified failure"
		}
		return models.Failure(reason)
	}

	log.Debug().
		Int("records", len(envelope.Data)).
		Msg("Self-hosted scrape completed")

	// The service's rows may miss keys or exceed the cap; re-shape them
	// onto the uniform contract.
	raw := make([]map[string]string, len(envelope.Data))
	for i, rec := range envelope.Data {
		raw[i] = rec
	}
	out := normalize.Response(raw, req, 0)
	out.Usage = envelope.Usage
	return out
}

// CheckAvailability treats any 2xx from /health as reachable and anything
// else, including transport errors, as not.
func (s *SelfHostedBackend) CheckAvailability(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		log.Debug().Err(err).Str("base_url", s.baseURL).Msg("Health probe failed")
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
