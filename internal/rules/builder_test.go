package rules

import (
	"testing"

	"github.com/partscout/partscout/pkg/models"
)

func TestCanonical(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"Product Name", "product_name"},
		{"price", "price"},
		{"  Part   Number ", "part_number"},
		{"Datasheet URL", "datasheet_url"},
		{"PRICE BREAKS", "price_breaks"},
	}

	for _, tc := range cases {
		if got := Canonical(tc.in); got != tc.expected {
			t.Errorf("Canonical(%q) = %q, want %q", tc.in, got, tc.expected)
		}
	}
}

func TestBuild_KnownFields(t *testing.T) {
	fields := []string{"Product Name", "Price", "Seller"}
	built := Build(fields)

	if len(built) != len(fields) {
		t.Fatalf("Expected %d rules, got %d", len(fields), len(built))
	}

	for i, r := range built {
		if r.Field != fields[i] {
			t.Errorf("Rule %d field = %q, want %q (request order must be preserved)", i, r.Field, fields[i])
		}
		if len(r.Selectors) == 0 {
			t.Errorf("Rule for %q has no selector candidates", r.Field)
		}
		if r.Kind != models.KindText {
			t.Errorf("Rule for %q kind = %q, want %q", r.Field, r.Kind, models.KindText)
		}
	}

	if built[0].Selectors[0] != "h1" {
		t.Errorf("Product Name first candidate = %q, want h1", built[0].Selectors[0])
	}
}

func TestBuild_UnknownFieldGetsFallback(t *testing.T) {
	built := Build([]string{"Warranty Period"})
	if len(built) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(built))
	}

	r := built[0]
	if len(r.Selectors) != 2 {
		t.Fatalf("Fallback should synthesize 2 candidates, got %v", r.Selectors)
	}
	if r.Selectors[0] != `[data-field="Warranty Period"]` {
		t.Errorf("First fallback candidate = %q", r.Selectors[0])
	}
	if r.Selectors[1] != ".warranty_period" {
		t.Errorf("Second fallback candidate = %q", r.Selectors[1])
	}
}

func TestBuild_DoesNotShareCuratedSlices(t *testing.T) {
	first := Build([]string{"Price"})
	first[0].Selectors[0] = "mutated"

	second := Build([]string{"Price"})
	if second[0].Selectors[0] == "mutated" {
		t.Error("Build must copy curated selector lists, not alias them")
	}
}
