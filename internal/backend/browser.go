package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/partscout/partscout/internal/cache"
	"github.com/partscout/partscout/internal/extract"
	"github.com/partscout/partscout/internal/normalize"
	"github.com/partscout/partscout/internal/ratelimit"
	"github.com/partscout/partscout/internal/rules"
	"github.com/partscout/partscout/internal/sites"
	"github.com/partscout/partscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// Browser extractions are best-effort heuristics against live markup, so
// their confidence band sits below the hosted API's.
var browserBand = extract.Band{Floor: 0.50, Ceil: 0.90}

// settleDelay gives client-side rendering a moment after load before the
// DOM snapshot is taken.
const settleDelay = 1500 * time.Millisecond

// BrowserBackend renders the search page in local headless Chrome and runs
// the selector engine over the resulting DOM. No credentials, no external
// service: just a Chrome install.
type BrowserBackend struct {
	cache     cache.Cache
	limiter   ratelimit.RateLimiter
	timeout   time.Duration
	userAgent string
	headless  bool
	proxy     string
}

// NewBrowserBackend creates a headless-Chrome adapter. Rendered search
// pages are cached by URL for the session so repeated identical searches
// skip the render.
func NewBrowserBackend(c cache.Cache, lim ratelimit.RateLimiter, timeout time.Duration, userAgent, proxy string, headless bool) *BrowserBackend {
	return &BrowserBackend{
		cache:     c,
		limiter:   lim,
		timeout:   timeout,
		userAgent: userAgent,
		headless:  headless,
		proxy:     proxy,
	}
}

func (b *BrowserBackend) Name() string {
	return "BrowserBackend"
}

// Scrape navigates to the site's search URL, waits for the page to settle,
// snapshots the DOM, and extracts the requested fields.
func (b *BrowserBackend) Scrape(ctx context.Context, req models.ScrapeRequest) *models.ScrapeResponse {
	searchURL := sites.BuildSearchURL(req.WebsiteURL, req.SearchTerm)
	ruleList := rules.Build(req.ExtractFields)

	html, err := b.renderedHTML(ctx, searchURL)
	if err != nil {
		return models.Failure(fmt.Sprintf("headless browser failed to load %s: %v", searchURL, err))
	}

	raw, err := extract.Records(html, ruleList, normalize.Cap(req.MaxResults), browserBand)
	if err != nil {
		return models.Failure("failed to parse rendered page: " + err.Error())
	}
	if len(raw) == 0 {
		log.Warn().Str("search_url", searchURL).Msg("No selector matched the rendered page")
	}

	return normalize.Response(raw, req, browserBand.Floor)
}

// renderedHTML returns the post-render DOM for url, from cache when the
// same search ran earlier in this session.
func (b *BrowserBackend) renderedHTML(ctx context.Context, url string) (string, error) {
	if b.cache != nil {
		if html, ok := b.cache.Get(url); ok {
			log.Debug().Str("url", url).Msg("Rendered page served from cache")
			return html, nil
		}
	}

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx, url); err != nil {
			return "", err
		}
	}

	timeout := b.timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", b.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(b.userAgent),
	}
	if b.proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(b.proxy))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	start := time.Now()
	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("url", url).
		Dur("elapsed", time.Since(start)).
		Msg("Page rendered")

	if b.cache != nil {
		b.cache.Set(url, html)
	}
	return html, nil
}
