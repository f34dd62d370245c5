package backend

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/partscout/partscout/pkg/models"
)

func TestMockBackend_Scrape_BasicSearch(t *testing.T) {
	m := NewSeededMockBackend(0, 42)
	req := models.ScrapeRequest{
		WebsiteURL:    "https://www.ebay.com",
		SearchTerm:    "arduino uno",
		ExtractFields: []string{"Product Name", "Price"},
		MaxResults:    3,
	}

	resp := m.Scrape(context.Background(), req)

	if !resp.Success {
		t.Fatalf("Mock scrape should always succeed, got error %q", resp.Error)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(resp.Data))
	}

	priceRe := regexp.MustCompile(`^\$\d+\.\d{2}$`)
	confRe := regexp.MustCompile(`^0\.\d{2}$|^1\.00$`)
	for i, rec := range resp.Data {
		if len(rec) != 3 {
			t.Errorf("Record %d has %d keys, want 3", i, len(rec))
		}
		if rec["Product Name"] == "" {
			t.Errorf("Record %d has empty Product Name", i)
		}
		if !priceRe.MatchString(rec["Price"]) {
			t.Errorf("Record %d price %q does not look like a dollar amount", i, rec["Price"])
		}
		if !confRe.MatchString(rec[models.ConfidenceKey]) {
			t.Errorf("Record %d confidence %q is not a two-decimal score", i, rec[models.ConfidenceKey])
		}
	}
}

func TestMockBackend_Scrape_SearchTermAppearsInNames(t *testing.T) {
	m := NewSeededMockBackend(0, 1)
	req := models.ScrapeRequest{
		WebsiteURL:    "https://www.mouser.com",
		SearchTerm:    "esp32 devkit",
		ExtractFields: []string{"Product Name"},
		MaxResults:    2,
	}

	resp := m.Scrape(context.Background(), req)
	for i, rec := range resp.Data {
		if got := rec["Product Name"]; got == "" || !regexp.MustCompile(`esp32 devkit`).MatchString(got) {
			t.Errorf("Record %d name %q should embed the search term", i, got)
		}
	}
}

func TestMockBackend_Scrape_CeilingApplies(t *testing.T) {
	m := NewSeededMockBackend(0, 7)
	req := models.ScrapeRequest{
		SearchTerm:    "resistor",
		ExtractFields: []string{"Price"},
		MaxResults:    25,
	}

	resp := m.Scrape(context.Background(), req)
	if len(resp.Data) != 10 {
		t.Errorf("Expected the 10-record ceiling, got %d", len(resp.Data))
	}
}

func TestMockBackend_Scrape_UnknownFieldGetsPlaceholder(t *testing.T) {
	m := NewSeededMockBackend(0, 3)
	req := models.ScrapeRequest{
		SearchTerm:    "fuse",
		ExtractFields: []string{"Warranty"},
		MaxResults:    1,
	}

	resp := m.Scrape(context.Background(), req)
	if got := resp.Data[0]["Warranty"]; got != "Sample Warranty 1" {
		t.Errorf("Unknown field value = %q, want templated placeholder", got)
	}
}

func TestMockBackend_Scrape_Deterministic(t *testing.T) {
	req := models.ScrapeRequest{
		SearchTerm:    "capacitor",
		ExtractFields: []string{"Price", "Seller", "Part Number"},
		MaxResults:    4,
	}

	first := NewSeededMockBackend(0, 99).Scrape(context.Background(), req)
	second := NewSeededMockBackend(0, 99).Scrape(context.Background(), req)

	for i := range first.Data {
		for k, v := range first.Data[i] {
			if second.Data[i][k] != v {
				t.Errorf("Record %d key %q differs between seeded runs: %q vs %q", i, k, v, second.Data[i][k])
			}
		}
	}
}

func TestMockBackend_Scrape_CancelledContext(t *testing.T) {
	m := NewSeededMockBackend(5*time.Second, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	resp := m.Scrape(ctx, models.ScrapeRequest{
		SearchTerm:    "led",
		ExtractFields: []string{"Price"},
		MaxResults:    1,
	})
	if time.Since(start) > time.Second {
		t.Error("Cancelled scrape should return promptly, not wait out the delay")
	}
	if resp.Success {
		t.Error("Cancelled scrape must come back as a failure envelope")
	}
	if resp.Error == "" {
		t.Error("Failure envelope needs a reason string")
	}
}
