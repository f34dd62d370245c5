package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/partscout/partscout/internal/ui"
)

// pingCmd probes the networked backends without running a scrape.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check which scraping backends are reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		out := cmd.OutOrStdout()

		report := func(name string, up bool, detail string) {
			if up {
				fmt.Fprintf(out, "  %s %-10s %s\n", ui.Success("●"), name, ui.Dim(detail))
			} else {
				fmt.Fprintf(out, "  %s %-10s %s\n", ui.Error("●"), name, ui.Dim(detail))
			}
		}

		report("api", a.API.CheckAvailability(cmd.Context()), a.Config.APIEndpoint)
		report("server", a.SelfHosted.CheckAvailability(cmd.Context()), a.Config.SelfHostedURL)
		report("mock", true, "always available")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
