package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/partscout/partscout/internal/clean"
	"github.com/partscout/partscout/internal/ui"
	"github.com/partscout/partscout/internal/urlutil"
)

var inspectOutput string

// inspectCmd fetches one product page and renders its readable content as
// markdown, which is handy for eyeballing a listing before wiring up
// extraction fields for its site.
var inspectCmd = &cobra.Command{
	Use:   "inspect <url>",
	Short: "Fetch a product page and print it as markdown",
	Example: `  partscout inspect https://www.ebay.com/itm/123456789
  partscout inspect https://www.digikey.com/en/products/detail/x/y/123 -o page.md`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "Write markdown to a file instead of stdout")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	a := GetApp()
	pageURL := args[0]

	if err := urlutil.Validate(pageURL); err != nil {
		return err
	}
	if err := a.RateLimiter.Wait(cmd.Context(), pageURL); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, pageURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", a.Config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read page: %w", err)
	}

	markdown, err := clean.Markdown(string(body), pageURL)
	if err != nil {
		return fmt.Errorf("failed to convert page: %w", err)
	}
	log.Debug().Str("url", pageURL).Int("bytes", len(markdown)).Msg("Page converted")

	if inspectOutput != "" {
		if err := os.WriteFile(inspectOutput, []byte(markdown), 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Saved to %s\n", ui.Success("✓"), inspectOutput)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), markdown)
	return nil
}
