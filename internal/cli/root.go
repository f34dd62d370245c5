package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/partscout/partscout/internal/app"
	"github.com/partscout/partscout/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "partscout",
	Short:   "Search marketplaces for product data from the command line",
	Long:    `Partscout runs product searches against marketplaces like eBay, DigiKey, and Mouser through interchangeable scraping backends and extracts the fields you ask for into a table, JSON, or CSV.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Initialize the application lazily so -h/--help doesn't start it.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		SetApp(a)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		a := GetApp()
		if a == nil {
			return
		}
		if err := a.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Shutdown error")
		}
		SetApp(nil)
	}
}
