package sites

import (
	"net/url"
	"strings"
)

// searchRule maps a host substring to the path-and-query template of that
// host's search endpoint. Rules are tried in order; first match wins.
type searchRule struct {
	hostContains string
	template     string
}

// Templates mirror each marketplace's real search endpoint. The %s slot
// receives the percent-encoded search term.
var searchRules = []searchRule{
	{hostContains: "ebay.com", template: "/sch/i.html?_nkw=%s"},
	{hostContains: "ebay.de", template: "/sch/i.html?_nkw=%s"},
	{hostContains: "digikey.com", template: "/en/products/result?keywords=%s"},
	{hostContains: "digikey.de", template: "/de/products/result?keywords=%s"},
	{hostContains: "mouser.com", template: "/ProductIndex.aspx?Keyword=%s"},
	{hostContains: "rs-online.com", template: "/web/c/?searchTerm=%s"},
	{hostContains: "radwell.com", template: "/shop?q=%s"},
}

const genericTemplate = "/search?q=%s"

// BuildSearchURL turns a site base URL and a search term into the concrete
// search-results URL for that site. Unrecognized hosts get the generic
// /search?q= pattern. The function is pure: identical inputs always produce
// identical output, and trailing slashes on the base never produce double
// or missing slashes.
func BuildSearchURL(baseURL, searchTerm string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	encoded := url.QueryEscape(searchTerm)

	for _, r := range searchRules {
		if strings.Contains(base, r.hostContains) {
			return base + strings.Replace(r.template, "%s", encoded, 1)
		}
	}
	return base + strings.Replace(genericTemplate, "%s", encoded, 1)
}
