package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/partscout/partscout/internal/creds"
	"github.com/partscout/partscout/internal/ui"
)

var validateKey string

// validateCmd checks a key against the hosted scraping API with the
// cheapest possible call.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the scraping API key against the provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()

		key := validateKey
		if key == "" {
			key = os.Getenv("PARTSCOUT_API_KEY")
		}
		if key == "" {
			stored, err := creds.Load()
			if err != nil {
				return errors.New("no API key to validate; pass --api-key or store one with 'partscout key set'")
			}
			key = stored
		}

		status := a.API.ValidateCredentials(cmd.Context(), key)
		if status.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "%s API key accepted\n", ui.Success("✓"))
			return nil
		}
		return fmt.Errorf("API key rejected: %s", status.Reason)
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateKey, "api-key", "", "Key to validate (defaults to env or stored key)")
	rootCmd.AddCommand(validateCmd)
}
