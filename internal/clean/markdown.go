package clean

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/partscout/partscout/internal/urlutil"
)

// Markdown converts a page to GitHub-flavored markdown after sanitizing it.
// Relative links are resolved against pageURL so datasheet and product
// links stay clickable outside the page.
func Markdown(htmlContent, pageURL string) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, exists := selec.Attr("href")
			if !exists {
				return nil
			}
			resolved := urlutil.Resolve(pageURL, href)
			str := fmt.Sprintf("[%s](%s)", selec.Text(), resolved)
			return &str
		},
	})

	cleaned, err := HTML(htmlContent)
	if err != nil {
		return "", err
	}
	return converter.ConvertString(cleaned)
}
