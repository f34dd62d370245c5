// Package sites holds the static catalog of supported marketplaces and the
// search URL construction for each of them.
package sites

import "strings"

// Site is display metadata for a target website.
type Site struct {
	DisplayName string
	BaseURL     string
	// Known is false for custom URLs that are not in the catalog.
	Known bool
}

// catalog is ordered for stable `partscout sites` output.
var catalog = []Site{
	{DisplayName: "eBay.com", BaseURL: "https://www.ebay.com", Known: true},
	{DisplayName: "eBay.de", BaseURL: "https://www.ebay.de", Known: true},
	{DisplayName: "DigiKey.com", BaseURL: "https://www.digikey.com", Known: true},
	{DisplayName: "DigiKey.de", BaseURL: "https://www.digikey.de", Known: true},
	{DisplayName: "RS Online UK", BaseURL: "https://uk.rs-online.com", Known: true},
	{DisplayName: "RS Online DE", BaseURL: "https://de.rs-online.com", Known: true},
	{DisplayName: "Mouser.com", BaseURL: "https://www.mouser.com", Known: true},
	{DisplayName: "Radwell", BaseURL: "https://www.radwell.com", Known: true},
	{DisplayName: "Farnell", BaseURL: "https://www.farnell.com", Known: true},
}

// Lookup resolves a base URL or display name to its catalog entry.
// Unrecognized inputs are valid: they come back unchanged as a custom site
// with no display metadata. Lookup never fails.
func Lookup(urlOrName string) Site {
	needle := strings.TrimRight(strings.TrimSpace(urlOrName), "/")
	for _, s := range catalog {
		if strings.EqualFold(needle, s.BaseURL) || strings.EqualFold(needle, s.DisplayName) {
			return s
		}
	}
	return Site{DisplayName: "", BaseURL: needle, Known: false}
}

// All returns the catalog in display order.
func All() []Site {
	out := make([]Site, len(catalog))
	copy(out, catalog)
	return out
}
