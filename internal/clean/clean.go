// Package clean strips navigation, ads, and tracking noise from product
// pages before they are shown or converted, keeping the actual product
// content.
package clean

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// unwantedSelectors name the page chrome removed wholesale.
var unwantedSelectors = []string{
	"script", "style", "link", "meta", "noscript", "iframe", "svg",
	"nav", "footer", "header", "form", "input", "button", "select",
	"textarea", "canvas",
	".advertisement", ".ads", ".cookie-banner",
	".newsletter", ".social-media", ".breadcrumb",
}

// noisePatterns remove boilerplate phrases that survive tag stripping.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cookie\s+policy`),
	regexp.MustCompile(`(?i)privacy\s+policy`),
	regexp.MustCompile(`(?i)terms\s+of\s+service`),
	regexp.MustCompile(`(?i)newsletter\s+signup`),
	regexp.MustCompile(`(?i)follow\s+us`),
	regexp.MustCompile(`(?i)advertisement`),
	regexp.MustCompile(`(?i)sponsored\s+content`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// HTML returns a sanitized copy of the document: unwanted elements removed
// and attributes stripped down to href/src/alt/title, preserving structure
// for downstream converters.
func HTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find(strings.Join(unwantedSelectors, ", ")).Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		node := s.Nodes[0]
		var kept []html.Attribute
		for _, attr := range node.Attr {
			switch node.Data {
			case "a":
				if attr.Key == "href" || attr.Key == "title" {
					kept = append(kept, attr)
				}
			case "img":
				if attr.Key == "src" || attr.Key == "alt" || attr.Key == "title" {
					kept = append(kept, attr)
				}
			}
		}
		node.Attr = kept
	})

	out, err := doc.Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Text extracts the readable product content from a page: main product
// containers first, generic content areas next, whole body as a last
// resort, then noise phrases and repetition removed.
func Text(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	doc.Find(strings.Join(unwantedSelectors, ", ")).Remove()

	productSelectors := []string{
		`[data-testid*="product"]`, ".product-details", ".product-info",
		".item-details", "#product-description", ".part-details", ".component-info",
	}
	var parts []string
	for _, sel := range productSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			parts = append(parts, s.Text())
		})
	}
	if len(parts) == 0 {
		for _, sel := range []string{"main", ".main-content", "#main", ".content"} {
			if found := doc.Find(sel); found.Length() > 0 {
				parts = append(parts, found.First().Text())
				break
			}
		}
	}
	if len(parts) == 0 {
		parts = append(parts, doc.Find("body").Text())
	}

	return scrub(strings.Join(parts, " ")), nil
}

// scrub collapses whitespace, drops boilerplate phrases, and removes
// repeated sentences.
func scrub(text string) string {
	for _, pattern := range noisePatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	text = whitespaceRun.ReplaceAllString(text, " ")

	seen := make(map[string]bool)
	var unique []string
	for _, sentence := range strings.Split(text, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) > 10 && !seen[sentence] {
			seen[sentence] = true
			unique = append(unique, sentence)
		}
	}
	return strings.Join(unique, ". ")
}
