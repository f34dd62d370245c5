package sites

import "testing"

func TestBuildSearchURL_KnownHosts(t *testing.T) {
	cases := []struct {
		name     string
		baseURL  string
		term     string
		expected string
	}{
		{
			name:     "ebay.com",
			baseURL:  "https://www.ebay.com",
			term:     "arduino uno",
			expected: "https://www.ebay.com/sch/i.html?_nkw=arduino+uno",
		},
		{
			name:     "ebay.de",
			baseURL:  "https://www.ebay.de",
			term:     "arduino",
			expected: "https://www.ebay.de/sch/i.html?_nkw=arduino",
		},
		{
			name:     "digikey.com uses the english result path",
			baseURL:  "https://www.digikey.com",
			term:     "stm32",
			expected: "https://www.digikey.com/en/products/result?keywords=stm32",
		},
		{
			name:     "digikey.de uses the german result path",
			baseURL:  "https://www.digikey.de",
			term:     "stm32",
			expected: "https://www.digikey.de/de/products/result?keywords=stm32",
		},
		{
			name:     "mouser",
			baseURL:  "https://www.mouser.com",
			term:     "esp32",
			expected: "https://www.mouser.com/ProductIndex.aspx?Keyword=esp32",
		},
		{
			name:     "rs-online uk",
			baseURL:  "https://uk.rs-online.com",
			term:     "relay",
			expected: "https://uk.rs-online.com/web/c/?searchTerm=relay",
		},
		{
			name:     "rs-online de",
			baseURL:  "https://de.rs-online.com",
			term:     "relay",
			expected: "https://de.rs-online.com/web/c/?searchTerm=relay",
		},
		{
			name:     "radwell",
			baseURL:  "https://www.radwell.com",
			term:     "plc module",
			expected: "https://www.radwell.com/shop?q=plc+module",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildSearchURL(tc.baseURL, tc.term)
			if got != tc.expected {
				t.Errorf("BuildSearchURL(%q, %q) = %q, want %q", tc.baseURL, tc.term, got, tc.expected)
			}
		})
	}
}

func TestBuildSearchURL_UnknownHostGetsGenericPattern(t *testing.T) {
	got := BuildSearchURL("https://shop.example.com", "widget")
	expected := "https://shop.example.com/search?q=widget"
	if got != expected {
		t.Errorf("Expected generic search pattern %q, got %q", expected, got)
	}
}

func TestBuildSearchURL_TrailingSlash(t *testing.T) {
	with := BuildSearchURL("https://www.ebay.com/", "fuse")
	without := BuildSearchURL("https://www.ebay.com", "fuse")
	if with != without {
		t.Errorf("Trailing slash changed the result: %q vs %q", with, without)
	}
	if with != "https://www.ebay.com/sch/i.html?_nkw=fuse" {
		t.Errorf("Unexpected URL: %q", with)
	}
}

func TestBuildSearchURL_EncodesSpecialCharacters(t *testing.T) {
	got := BuildSearchURL("https://www.mouser.com", "op-amp & buffer")
	expected := "https://www.mouser.com/ProductIndex.aspx?Keyword=op-amp+%26+buffer"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestBuildSearchURL_Deterministic(t *testing.T) {
	first := BuildSearchURL("https://www.digikey.com", "atmega328p")
	for i := 0; i < 5; i++ {
		if got := BuildSearchURL("https://www.digikey.com", "atmega328p"); got != first {
			t.Fatalf("Call %d returned %q, first call returned %q", i, got, first)
		}
	}
}

func TestLookup_CatalogEntries(t *testing.T) {
	byURL := Lookup("https://www.ebay.com")
	if !byURL.Known || byURL.DisplayName != "eBay.com" {
		t.Errorf("Lookup by URL failed: %+v", byURL)
	}

	byName := Lookup("mouser.com")
	if !byName.Known || byName.BaseURL != "https://www.mouser.com" {
		t.Errorf("Lookup by display name failed: %+v", byName)
	}

	slashed := Lookup("https://www.radwell.com/")
	if !slashed.Known {
		t.Errorf("Trailing slash should not break catalog lookup: %+v", slashed)
	}
}

func TestLookup_CustomSitePassesThrough(t *testing.T) {
	s := Lookup("https://parts.internal.example/")
	if s.Known {
		t.Error("Unknown site should not be marked as known")
	}
	if s.BaseURL != "https://parts.internal.example" {
		t.Errorf("Expected trimmed base URL, got %q", s.BaseURL)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	if len(a) == 0 {
		t.Fatal("Catalog should not be empty")
	}
	a[0].DisplayName = "mutated"
	if All()[0].DisplayName == "mutated" {
		t.Error("All() must return a copy, not the backing slice")
	}
}
