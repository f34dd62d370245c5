package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/partscout/partscout/internal/sites"
	"github.com/partscout/partscout/internal/ui"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the supported marketplace catalog",
	Long:  `Prints the built-in site catalog. Any other base URL can still be used with 'search --site'; it is treated as a custom site with the generic search pattern.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range sites.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", ui.Bold(fmt.Sprintf("%-14s", s.DisplayName)), ui.Dim(s.BaseURL))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
