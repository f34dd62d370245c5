package normalize

import "strconv"

// Badge is the display tier a confidence score maps to.
type Badge string

const (
	BadgeHigh   Badge = "High"
	BadgeMedium Badge = "Medium"
	BadgeLow    Badge = "Low"
)

// Thresholds are inclusive lower bounds: 0.80 is High, 0.60 is Medium.
const (
	highThreshold   = 0.80
	mediumThreshold = 0.60
)

// BadgeFor maps a confidence string to its display tier. Strings that do
// not parse as a float rank Low.
func BadgeFor(confidence string) Badge {
	score, err := strconv.ParseFloat(confidence, 64)
	if err != nil {
		return BadgeLow
	}
	switch {
	case score >= highThreshold:
		return BadgeHigh
	case score >= mediumThreshold:
		return BadgeMedium
	default:
		return BadgeLow
	}
}
