// Package extract evaluates extraction rules against HTML. It is the
// selector engine behind the API and browser backends: candidate selectors
// are tried in order per field, matches are zipped positionally into
// records, and each record is scored by how many of its fields actually
// matched.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/partscout/partscout/internal/normalize"
	"github.com/partscout/partscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// Band maps a match fraction into a backend's confidence range. A record
// with every field matched scores Ceil, one with nothing matched scores
// Floor.
type Band struct {
	Floor float64
	Ceil  float64
}

// Score converts matched-field counts into a confidence value.
func (b Band) Score(matched, total int) float64 {
	if total <= 0 {
		return b.Floor
	}
	return b.Floor + (b.Ceil-b.Floor)*float64(matched)/float64(total)
}

// Records extracts up to limit rows from the document. For each rule the
// candidate selectors are tried in order until one yields non-empty text;
// the i-th match of every field forms record i. Fields whose selectors
// match nothing are emitted as empty strings, never dropped. The returned
// rows carry a Confidence value from the given band.
func Records(html string, ruleList []models.Rule, limit int, band Band) ([]map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	structured := structuredValues(doc, ruleList)

	values := make(map[string][]string, len(ruleList))
	count := 0
	for _, rule := range ruleList {
		matched := selectValues(doc, rule, limit)
		// Structured product data beats heuristic selector matches for
		// the first record.
		if sv, ok := structured[rule.Field]; ok && sv != "" {
			if len(matched) == 0 {
				matched = []string{sv}
			} else {
				matched[0] = sv
			}
		}
		values[rule.Field] = matched
		if len(matched) > count {
			count = len(matched)
		}
	}
	if count > limit {
		count = limit
	}

	rows := make([]map[string]string, 0, count)
	for i := 0; i < count; i++ {
		row := make(map[string]string, len(ruleList)+1)
		matchedFields := 0
		for _, rule := range ruleList {
			v := ""
			if i < len(values[rule.Field]) {
				v = values[rule.Field][i]
			}
			if v != "" {
				matchedFields++
			}
			row[rule.Field] = v
		}
		score := band.Score(matchedFields, len(ruleList))
		row[models.ConfidenceKey] = normalize.FormatConfidence(score)
		rows = append(rows, row)
	}

	log.Debug().
		Int("rules", len(ruleList)).
		Int("records", len(rows)).
		Msg("Selector extraction completed")

	return rows, nil
}

// selectValues returns the trimmed text of up to limit matches for the
// first candidate selector that yields anything.
func selectValues(doc *goquery.Document, rule models.Rule, limit int) []string {
	for _, selector := range rule.Selectors {
		var out []string
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.Join(strings.Fields(sel.Text()), " ")
			if text != "" {
				out = append(out, text)
			}
			return len(out) < limit
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
