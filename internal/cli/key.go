package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/partscout/partscout/internal/creds"
	"github.com/partscout/partscout/internal/ui"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored scraping API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Store the scraping API key in the OS keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := creds.Save(args[0]); err != nil {
			return fmt.Errorf("failed to store key: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s API key stored\n", ui.Success("✓"))
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored key, partially masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := creds.Load()
		if err != nil {
			if errors.Is(err, creds.ErrNotFound) {
				return errors.New("no API key stored; add one with 'partscout key set'")
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), mask(key))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := creds.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s API key removed\n", ui.Success("✓"))
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd, keyShowCmd, keyClearCmd)
	rootCmd.AddCommand(keyCmd)
}

// mask hides all but the edges of a key so it can be recognized without
// being leaked into terminal history or screenshots.
func mask(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
