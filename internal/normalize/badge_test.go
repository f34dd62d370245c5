package normalize

import "testing"

func TestBadgeFor_Thresholds(t *testing.T) {
	cases := []struct {
		confidence string
		expected   Badge
	}{
		{"0.95", BadgeHigh},
		{"0.80", BadgeHigh}, // lower bound is inclusive
		{"0.79", BadgeMedium},
		{"0.60", BadgeMedium}, // lower bound is inclusive
		{"0.59", BadgeLow},
		{"0.00", BadgeLow},
		{"1.00", BadgeHigh},
	}

	for _, tc := range cases {
		if got := BadgeFor(tc.confidence); got != tc.expected {
			t.Errorf("BadgeFor(%q) = %q, want %q", tc.confidence, got, tc.expected)
		}
	}
}

func TestBadgeFor_UnparseableRanksLow(t *testing.T) {
	for _, s := range []string{"", "high", "n/a"} {
		if got := BadgeFor(s); got != BadgeLow {
			t.Errorf("BadgeFor(%q) = %q, want Low", s, got)
		}
	}
}
