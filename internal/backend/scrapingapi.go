package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/partscout/partscout/internal/extract"
	"github.com/partscout/partscout/internal/normalize"
	"github.com/partscout/partscout/internal/ratelimit"
	"github.com/partscout/partscout/internal/rules"
	"github.com/partscout/partscout/internal/sites"
	"github.com/partscout/partscout/pkg/models"
	"github.com/rs/zerolog/log"
)

const (
	// Response headers carrying the metering counters.
	headerCost      = "Spb-Cost"
	headerRemaining = "Spb-Remaining"

	// probeURL is a cheap render-free target for credential validation.
	probeURL = "https://httpbin.org/status/200"
)

// Hosted-API extractions sit in the top confidence band: the provider
// renders JS behind premium proxies, so matches are trustworthy.
var apiBand = extract.Band{Floor: 0.85, Ceil: 1.0}

// APIBackend delegates scraping to a hosted scraping API (ScrapingBee wire
// format): one POST carrying the target URL and extraction rules, raw HTML
// back, metering counters in response headers.
type APIBackend struct {
	endpoint    string
	countryCode string
	client      *http.Client
	limiter     ratelimit.RateLimiter
	timeout     time.Duration
}

// apiRequest is the provider's request body.
type apiRequest struct {
	APIKey       string                 `json:"api_key"`
	URL          string                 `json:"url"`
	RenderJS     bool                   `json:"render_js"`
	PremiumProxy bool                   `json:"premium_proxy,omitempty"`
	CountryCode  string                 `json:"country_code,omitempty"`
	WaitFor      string                 `json:"wait_for,omitempty"`
	Timeout      int                    `json:"timeout,omitempty"`
	ExtractRules map[string]apiWireRule `json:"extract_rules,omitempty"`
}

// apiWireRule is the provider's per-field rule shape: one comma-joined
// selector string plus a value type.
type apiWireRule struct {
	Selector string `json:"selector"`
	Type     string `json:"type"`
}

// NewAPIBackend creates a hosted-API adapter.
func NewAPIBackend(endpoint, countryCode string, client *http.Client, limiter ratelimit.RateLimiter, timeout time.Duration) *APIBackend {
	return &APIBackend{
		endpoint:    endpoint,
		countryCode: countryCode,
		client:      client,
		limiter:     limiter,
		timeout:     timeout,
	}
}

func (a *APIBackend) Name() string {
	return "APIBackend"
}

// Scrape submits one search through the hosted API. An empty key fails
// immediately with no network call. Non-success upstream statuses surface
// with the status code and body unmodified.
func (a *APIBackend) Scrape(ctx context.Context, req models.ScrapeRequest) *models.ScrapeResponse {
	if strings.TrimSpace(req.APIKey) == "" {
		return models.Failure("scraping API key is required; set one with 'partscout key set' or --api-key")
	}

	searchURL := sites.BuildSearchURL(req.WebsiteURL, req.SearchTerm)
	ruleList := rules.Build(req.ExtractFields)

	body := apiRequest{
		APIKey:       req.APIKey,
		URL:          searchURL,
		RenderJS:     true,
		PremiumProxy: true,
		CountryCode:  a.countryCode,
		WaitFor:      "networkidle",
		Timeout:      int(a.timeout / time.Millisecond),
		ExtractRules: wireRules(ruleList),
	}

	log.Debug().
		Str("search_url", searchURL).
		Int("fields", len(req.ExtractFields)).
		Msg("Submitting hosted API scrape")

	resp, html, err := a.post(ctx, body)
	if err != nil {
		return models.Failure(fmt.Sprintf("cannot reach scraping API at %s: %v", a.endpoint, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return models.Failure(fmt.Sprintf("scraping API rejected the key (%d): %s", resp.StatusCode, html))
		}
		return models.Failure(fmt.Sprintf("scraping API error (%d): %s", resp.StatusCode, html))
	}

	raw, err := extract.Records(html, ruleList, normalize.Cap(req.MaxResults), apiBand)
	if err != nil {
		return models.Failure("failed to parse scraping API response: " + err.Error())
	}

	out := normalize.Response(raw, req, apiBand.Floor)
	out.Usage = usageFromHeaders(resp.Header)
	return out
}

// CheckAvailability probes the endpoint without spending credits. Any
// transport error reads as unavailable.
func (a *APIBackend) CheckAvailability(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint, nil)
	if err != nil {
		return false
	}
	resp, err := a.client.Do(httpReq)
	if err != nil {
		return false
	}
	resp.Body.Close()
	// Any HTTP answer means the API is reachable; auth errors are a
	// credential matter, not availability.
	return true
}

// ValidateCredentials performs the cheapest accepted call: a render-free
// fetch of a static status URL. Network failures report as invalid with a
// connection reason rather than propagating.
func (a *APIBackend) ValidateCredentials(ctx context.Context, key string) models.CredentialStatus {
	if strings.TrimSpace(key) == "" {
		return models.CredentialStatus{Valid: false, Reason: "api key is empty"}
	}

	resp, body, err := a.post(ctx, apiRequest{
		APIKey:   key,
		URL:      probeURL,
		RenderJS: false,
	})
	if err != nil {
		return models.CredentialStatus{Valid: false, Reason: "connection failed: " + err.Error()}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return models.CredentialStatus{Valid: true}
	}
	return models.CredentialStatus{Valid: false, Reason: body}
}

// post sends the provider request and returns the response plus its body.
func (a *APIBackend) post(ctx context.Context, body apiRequest) (*http.Response, string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, a.endpoint); err != nil {
			return nil, "", err
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return resp, string(data), nil
}

// usageFromHeaders reads the metering counters. Absent or malformed headers
// default to cost=1 and remaining=0.
func usageFromHeaders(h http.Header) *models.UsageInfo {
	used := 1
	if v := h.Get(headerCost); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			used = n
		}
	}
	remaining := 0
	if v := h.Get(headerRemaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			remaining = n
		}
	}
	return &models.UsageInfo{CreditsUsed: used, CreditsRemaining: remaining}
}

// wireRules converts internal rules to the provider's single-selector
// format, joining candidates so the provider tries them as one group.
func wireRules(ruleList []models.Rule) map[string]apiWireRule {
	out := make(map[string]apiWireRule, len(ruleList))
	for _, r := range ruleList {
		out[rules.Canonical(r.Field)] = apiWireRule{
			Selector: strings.Join(r.Selectors, ", "),
			Type:     string(r.Kind),
		}
	}
	return out
}
