// Package normalize shapes heterogeneous backend output into the uniform
// record contract: bounded length, identical key sets, a Confidence score
// on every row.
package normalize

import (
	"fmt"
	"strconv"

	"github.com/partscout/partscout/pkg/models"
)

// RecordCeiling is the hard implementation cap on records per response,
// independent of what a backend returns or the request asks for.
const RecordCeiling = 10

// Cap returns the effective record bound for a request.
func Cap(maxResults int) int {
	if maxResults <= 0 || maxResults > RecordCeiling {
		return RecordCeiling
	}
	return maxResults
}

// FormatConfidence renders a score as the fixed-precision decimal string
// stored on each record, clamped into [0,1].
func FormatConfidence(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return fmt.Sprintf("%.2f", score)
}

// Columns is the ordered key set every record in a response exposes:
// the requested fields followed by the Confidence column.
func Columns(req models.ScrapeRequest) []string {
	cols := make([]string, 0, len(req.ExtractFields)+1)
	cols = append(cols, req.ExtractFields...)
	return append(cols, models.ConfidenceKey)
}

// Records truncates raw rows to the request bound and forces every row onto
// the uniform key set. Missing or unparseable values become empty strings
// rather than omitted keys; extra keys a backend invented are dropped.
// Confidence is always re-emitted through FormatConfidence, so out-of-range
// or oddly formatted scores from a remote service come out clamped to [0,1]
// at fixed precision; rows without a parseable score get the default.
func Records(raw []map[string]string, req models.ScrapeRequest, defaultScore float64) []models.ScrapeRecord {
	limit := Cap(req.MaxResults)
	if len(raw) > limit {
		raw = raw[:limit]
	}

	out := make([]models.ScrapeRecord, 0, len(raw))
	for _, row := range raw {
		rec := make(models.ScrapeRecord, len(req.ExtractFields)+1)
		for _, field := range req.ExtractFields {
			rec[field] = row[field]
		}
		score, err := strconv.ParseFloat(row[models.ConfidenceKey], 64)
		if err != nil {
			score = defaultScore
		}
		rec[models.ConfidenceKey] = FormatConfidence(score)
		out = append(out, rec)
	}
	return out
}

// Response wraps normalized records in a success envelope with stable
// column order.
func Response(raw []map[string]string, req models.ScrapeRequest, defaultScore float64) *models.ScrapeResponse {
	return &models.ScrapeResponse{
		Success: true,
		Data:    Records(raw, req, defaultScore),
		Columns: Columns(req),
	}
}
