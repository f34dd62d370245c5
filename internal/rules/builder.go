// Package rules turns user-entered field names into selector-based
// extraction rules that backends evaluate against result pages.
package rules

import (
	"fmt"
	"strings"

	"github.com/partscout/partscout/pkg/models"
)

// curated maps canonical field names to site-agnostic selector candidates,
// ordered from most to least specific. Adding a field is a data change.
var curated = map[string][]string{
	"product_name": {
		"h1",
		".it-ttl",
		".s-item__title",
		".pdp-product-name",
		`[data-testid="product-title"]`,
	},
	"price": {
		".notranslate",
		".s-item__price",
		".Price",
		".price",
		`[data-testid="price"]`,
	},
	"seller": {
		".s-item__seller-info",
		".seller-name",
		".vendor-name",
	},
	"availability": {
		".availability",
		".stock-status",
		".in-stock",
		`[data-testid="availability"]`,
	},
	"condition": {
		".condition",
		".s-item__subtitle",
		".item-condition",
	},
	"part_number": {
		".part-number",
		".mpn",
		`[itemprop="mpn"]`,
		".product-id",
	},
	"manufacturer": {
		".manufacturer",
		".brand",
		`[itemprop="brand"]`,
	},
	"country": {
		".item-location",
		".s-item__location",
		".ship-from",
	},
	"datasheet_url": {
		`a[href$=".pdf"]`,
		".datasheet-link",
	},
	"specifications": {
		".specifications",
		".product-attributes",
		".specs-table",
	},
	"price_breaks": {
		".price-breaks",
		".qty-pricing",
		".pricing-table",
	},
}

// Canonical normalizes a field name to its lookup key: lower case with
// internal whitespace runs collapsed to a single underscore.
func Canonical(field string) string {
	return strings.Join(strings.Fields(strings.ToLower(field)), "_")
}

// Build produces one extraction rule per requested field, in request order.
// Known fields get the curated candidate list; unknown fields get a
// synthesized fallback derived from the name, so arbitrary user input never
// fails to produce a rule. Build is pure and never errors.
func Build(fields []string) []models.Rule {
	out := make([]models.Rule, 0, len(fields))
	for _, field := range fields {
		key := Canonical(field)
		selectors, ok := curated[key]
		if !ok {
			selectors = fallback(field, key)
		}
		out = append(out, models.Rule{
			Field:     field,
			Selectors: append([]string(nil), selectors...),
			Kind:      models.KindText,
		})
	}
	return out
}

// fallback synthesizes a low-confidence generic rule for a field that has
// no curated entry.
func fallback(field, canonical string) []string {
	return []string{
		fmt.Sprintf("[data-field=%q]", field),
		"." + canonical,
	}
}
