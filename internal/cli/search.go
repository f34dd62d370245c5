package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/partscout/partscout/internal/backend"
	"github.com/partscout/partscout/internal/creds"
	"github.com/partscout/partscout/internal/output"
	"github.com/partscout/partscout/internal/retry"
	"github.com/partscout/partscout/internal/session"
	"github.com/partscout/partscout/internal/sites"
	"github.com/partscout/partscout/internal/ui"
	"github.com/partscout/partscout/pkg/models"
)

var (
	searchSite   string
	searchFields []string
	searchMax    int
	searchAPIKey string
	searchOutput string
	searchRetry  bool
)

// searchCmd runs one product search through the configured backend.
var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search a marketplace and extract product fields",
	Long: `Runs a product search on the selected site through the configured
scraping backend and prints the extracted fields as a table. Results can be
exported to JSON or CSV with --output.`,
	Example: `  # Mock backend, default fields
  partscout search "arduino uno"

  # Real scrape through the hosted API
  partscout search "arduino uno" --backend=api --site=eBay.com

  # Custom site and fields, exported to CSV
  partscout search "6ES7 214" --site=https://shop.example.com \
    -f "Product Name" -f Price -f "Part Number" -o results.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchSite, "site", "s", "https://www.ebay.com", "Target site (catalog name like eBay.com, or any base URL)")
	searchCmd.Flags().StringArrayVarP(&searchFields, "fields", "f", []string{"Product Name", "Price"}, "Fields to extract (repeatable)")
	searchCmd.Flags().IntVarP(&searchMax, "max-results", "n", 5, "Maximum number of records")
	searchCmd.Flags().StringVar(&searchAPIKey, "api-key", "", "Scraping API key (overrides stored key)")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "Export file (.json or .csv)")
	searchCmd.Flags().BoolVar(&searchRetry, "retry", false, "Retry failed scrapes with backoff")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a := GetApp()

	kind, err := backend.ParseKind(a.Config.Backend)
	if err != nil {
		return err
	}

	site := sites.Lookup(searchSite)
	req := models.ScrapeRequest{
		WebsiteURL:    site.BaseURL,
		SearchTerm:    args[0],
		ExtractFields: searchFields,
		MaxResults:    searchMax,
		APIKey:        resolveAPIKey(),
	}

	if err := session.ValidateRequest(req, kind); err != nil {
		return err
	}

	b := a.BackendFor(kind)
	log.Debug().
		Str("backend", b.Name()).
		Str("site", site.BaseURL).
		Str("term", req.SearchTerm).
		Msg("Starting scrape")

	gen := a.Session.Begin()
	resp := scrapeWithProgress(cmd, b, req)

	if !resp.Success {
		return errors.New(resp.Error)
	}
	a.Session.Commit(gen, resp)

	fmt.Fprintln(cmd.OutOrStdout())
	output.PrintTable(cmd.OutOrStdout(), resp)
	output.PrintUsage(cmd.OutOrStdout(), resp.Usage)

	if searchOutput != "" {
		return exportResults(cmd, resp, searchOutput)
	}
	return nil
}

// scrapeWithProgress runs the backend call with a terminal spinner, since
// a real scrape can take tens of seconds.
func scrapeWithProgress(cmd *cobra.Command, b backend.Backend, req models.ScrapeRequest) *models.ScrapeResponse {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Scraping via %s", b.Name())),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan *models.ScrapeResponse, 1)
	go func() {
		if searchRetry {
			var resp *models.ScrapeResponse
			err := retry.Do(cmd.Context(), retry.DefaultConfig(), func() error {
				resp = b.Scrape(cmd.Context(), req)
				if !resp.Success {
					return errors.New(resp.Error)
				}
				return nil
			})
			if err != nil && resp == nil {
				resp = models.Failure(err.Error())
			}
			done <- resp
			return
		}
		done <- b.Scrape(cmd.Context(), req)
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case resp := <-done:
			bar.Finish()
			return resp
		case <-ticker.C:
			bar.Add(1)
		}
	}
}

func exportResults(cmd *cobra.Command, resp *models.ScrapeResponse, path string) error {
	var err error
	switch {
	case strings.HasSuffix(path, ".json"):
		err = output.SaveJSON(resp, path)
	case strings.HasSuffix(path, ".csv"):
		err = output.SaveCSV(resp, path)
	default:
		return fmt.Errorf("unsupported export format %q (use .json or .csv)", path)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Saved to %s\n", ui.Success("✓"), path)
	return nil
}

// resolveAPIKey picks the key by precedence: flag, environment, stored.
func resolveAPIKey() string {
	if searchAPIKey != "" {
		return searchAPIKey
	}
	if v := os.Getenv("PARTSCOUT_API_KEY"); v != "" {
		return v
	}
	key, err := creds.Load()
	if err != nil {
		return ""
	}
	return key
}
