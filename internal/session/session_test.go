package session

import (
	"strings"
	"testing"

	"github.com/partscout/partscout/internal/backend"
	"github.com/partscout/partscout/pkg/models"
)

func successResponse(name string) *models.ScrapeResponse {
	return &models.ScrapeResponse{
		Success: true,
		Data:    []models.ScrapeRecord{{"Product Name": name, "Confidence": "0.90"}},
		Usage:   &models.UsageInfo{CreditsUsed: 1, CreditsRemaining: 99},
	}
}

func TestSession_CommitAndCurrent(t *testing.T) {
	s := New()

	if results, usage := s.Current(); results != nil || usage != nil {
		t.Error("Fresh session should have no results or usage")
	}

	gen := s.Begin()
	if !s.Commit(gen, successResponse("first")) {
		t.Fatal("Commit of the latest generation should succeed")
	}

	results, usage := s.Current()
	if results == nil || results.Data[0]["Product Name"] != "first" {
		t.Errorf("Unexpected current results: %+v", results)
	}
	if usage == nil || usage.CreditsRemaining != 99 {
		t.Errorf("Unexpected usage: %+v", usage)
	}
}

func TestSession_StaleGenerationDiscarded(t *testing.T) {
	s := New()

	slow := s.Begin()
	fast := s.Begin()

	if !s.Commit(fast, successResponse("fast")) {
		t.Fatal("Latest generation should commit")
	}
	if s.Commit(slow, successResponse("slow")) {
		t.Error("Stale generation must not commit")
	}

	results, _ := s.Current()
	if results.Data[0]["Product Name"] != "fast" {
		t.Errorf("Last write wins: current = %+v", results.Data[0])
	}
}

func TestSession_FailureNeverOverwritesResults(t *testing.T) {
	s := New()

	gen := s.Begin()
	s.Commit(gen, successResponse("good"))

	next := s.Begin()
	if s.Commit(next, models.Failure("upstream exploded")) {
		t.Error("Failure envelopes must not commit")
	}

	results, _ := s.Current()
	if results == nil || results.Data[0]["Product Name"] != "good" {
		t.Errorf("Previous results should survive a failed scrape: %+v", results)
	}
}

func TestSession_NilResponseRejected(t *testing.T) {
	s := New()
	if s.Commit(s.Begin(), nil) {
		t.Error("Nil response must not commit")
	}
}

func validRequest() models.ScrapeRequest {
	return models.ScrapeRequest{
		WebsiteURL:    "https://www.ebay.com",
		SearchTerm:    "arduino",
		ExtractFields: []string{"Product Name", "Price"},
		MaxResults:    5,
	}
}

func TestValidateRequest_Accepts(t *testing.T) {
	if err := ValidateRequest(validRequest(), backend.KindMock); err != nil {
		t.Errorf("Valid request rejected: %v", err)
	}

	bounds := validRequest()
	bounds.MaxResults = 1
	if err := ValidateRequest(bounds, backend.KindMock); err != nil {
		t.Errorf("MaxResults=1 should be accepted: %v", err)
	}
	bounds.MaxResults = 50
	if err := ValidateRequest(bounds, backend.KindMock); err != nil {
		t.Errorf("MaxResults=50 should be accepted: %v", err)
	}
}

func TestValidateRequest_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*models.ScrapeRequest)
		kind    backend.Kind
		wantSub string
	}{
		{
			name:    "blank search term",
			mutate:  func(r *models.ScrapeRequest) { r.SearchTerm = "   " },
			kind:    backend.KindMock,
			wantSub: "search term",
		},
		{
			name:    "no fields",
			mutate:  func(r *models.ScrapeRequest) { r.ExtractFields = nil },
			kind:    backend.KindMock,
			wantSub: "at least one",
		},
		{
			name:    "blank field",
			mutate:  func(r *models.ScrapeRequest) { r.ExtractFields = []string{"Price", " "} },
			kind:    backend.KindMock,
			wantSub: "empty strings",
		},
		{
			name:    "duplicate field",
			mutate:  func(r *models.ScrapeRequest) { r.ExtractFields = []string{"Price", "Price"} },
			kind:    backend.KindMock,
			wantSub: "duplicate",
		},
		{
			name:    "max results too low",
			mutate:  func(r *models.ScrapeRequest) { r.MaxResults = 0 },
			kind:    backend.KindMock,
			wantSub: "between 1 and 50",
		},
		{
			name:    "max results too high",
			mutate:  func(r *models.ScrapeRequest) { r.MaxResults = 51 },
			kind:    backend.KindMock,
			wantSub: "between 1 and 50",
		},
		{
			name:    "bad scheme",
			mutate:  func(r *models.ScrapeRequest) { r.WebsiteURL = "ftp://example.com" },
			kind:    backend.KindMock,
			wantSub: "website",
		},
		{
			name:    "api backend without key",
			mutate:  func(r *models.ScrapeRequest) { r.APIKey = "" },
			kind:    backend.KindAPI,
			wantSub: "requires an API key",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := ValidateRequest(req, tc.kind)
			if err == nil {
				t.Fatal("Expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("Error %q should mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestValidateRequest_KeyOnlyRequiredForAPI(t *testing.T) {
	req := validRequest()
	req.APIKey = ""
	for _, kind := range []backend.Kind{backend.KindMock, backend.KindSelfHosted, backend.KindBrowser} {
		if err := ValidateRequest(req, kind); err != nil {
			t.Errorf("Kind %q should not require a key: %v", kind, err)
		}
	}
}
