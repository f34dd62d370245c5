package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"github.com/partscout/partscout/internal/rules"
	"github.com/partscout/partscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// jsonLDAliases maps canonical field names to the keys product pages use in
// embedded structured data (schema.org Product and the ad-hoc objects SPAs
// assign to window globals).
var jsonLDAliases = map[string][]string{
	"product_name": {"name", "title", "product_name", "productName"},
	"price":        {"price", "lowPrice", "product_price"},
	"seller":       {"seller", "sellerName", "merchant"},
	"availability": {"availability", "stock", "inStock"},
	"condition":    {"itemCondition", "condition"},
	"part_number":  {"mpn", "sku", "partNumber", "part_number"},
	"manufacturer": {"brand", "manufacturer"},
	"country":      {"country", "countryOfOrigin", "shipsFrom"},
}

// structuredValues inspects inline scripts for embedded product data:
// application/ld+json blocks first, then a sandboxed run of plain inline
// scripts to capture object assignments. Returns field name → value for
// any requested field the page declared outright.
func structuredValues(doc *goquery.Document, ruleList []models.Rule) map[string]string {
	merged := map[string]any{}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		collectProductObjects(sel.Text(), merged)
	})

	if len(merged) == 0 {
		probeInlineScripts(doc, merged)
	}
	if len(merged) == 0 {
		return nil
	}

	out := map[string]string{}
	for _, rule := range ruleList {
		key := rules.Canonical(rule.Field)
		for _, alias := range append([]string{key}, jsonLDAliases[key]...) {
			if v, ok := merged[alias]; ok {
				if s := flatten(v); s != "" {
					out[rule.Field] = s
					break
				}
			}
		}
	}
	return out
}

// collectProductObjects walks a JSON-LD document (single object, array, or
// @graph) and merges the keys of anything typed as a Product, plus its
// offers block.
func collectProductObjects(raw string, into map[string]any) {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return
	}
	var walk func(any)
	walk = func(node any) {
		switch v := node.(type) {
		case []any:
			for _, item := range v {
				walk(item)
			}
		case map[string]any:
			if graph, ok := v["@graph"]; ok {
				walk(graph)
			}
			if t, _ := v["@type"].(string); strings.EqualFold(t, "Product") {
				for k, val := range v {
					if !strings.HasPrefix(k, "@") {
						into[k] = val
					}
				}
				if offers, ok := v["offers"].(map[string]any); ok {
					for k, val := range offers {
						if _, seen := into[k]; !seen && !strings.HasPrefix(k, "@") {
							into[k] = val
						}
					}
				}
			}
		}
	}
	walk(parsed)
}

// probeInlineScripts executes inline scripts in a throwaway goja VM with a
// minimal window shim and harvests object-valued globals whose keys look
// like product data. Scripts that error are skipped silently.
func probeInlineScripts(doc *goquery.Document, into map[string]any) {
	var sources []string
	doc.Find("script:not([src])").Each(func(_ int, sel *goquery.Selection) {
		if typ, _ := sel.Attr("type"); typ != "" && typ != "text/javascript" {
			return
		}
		if src := sel.Text(); strings.TrimSpace(src) != "" {
			sources = append(sources, src)
		}
	})
	if len(sources) == 0 {
		return
	}

	vm := goja.New()
	vm.Set("window", vm.GlobalObject())
	vm.Set("self", vm.GlobalObject())
	vm.Set("console", map[string]any{
		"log":   func(goja.FunctionCall) goja.Value { return nil },
		"error": func(goja.FunctionCall) goja.Value { return nil },
	})

	for _, src := range sources {
		if _, err := vm.RunString(src); err != nil {
			log.Debug().Err(err).Msg("Inline script skipped")
		}
	}

	for _, name := range vm.GlobalObject().Keys() {
		v := vm.Get(name)
		if v == nil {
			continue
		}
		obj, ok := v.Export().(map[string]any)
		if !ok {
			continue
		}
		if looksLikeProduct(obj) {
			for k, val := range obj {
				if _, seen := into[k]; !seen {
					into[k] = val
				}
			}
		}
	}
}

// looksLikeProduct requires at least two product-ish keys so arbitrary page
// state does not leak into records.
func looksLikeProduct(obj map[string]any) bool {
	hits := 0
	for _, aliases := range jsonLDAliases {
		for _, alias := range aliases {
			if _, ok := obj[alias]; ok {
				hits++
				break
			}
		}
	}
	return hits >= 2
}

func flatten(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any:
		// brand/seller objects carry the display string under "name"
		if name, ok := t["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}
