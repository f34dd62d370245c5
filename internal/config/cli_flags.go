package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	cmd.PersistentFlags().StringP("backend", "b", DefaultBackend, "Scraping backend: mock, api, server, or browser")
	cmd.PersistentFlags().String("endpoint", DefaultAPIEndpoint, "Hosted scraping API endpoint")
	cmd.PersistentFlags().String("server-url", DefaultSelfHostedURL, "Self-hosted scraping service base URL")
	cmd.PersistentFlags().String("proxy", "", "HTTP/SOCKS5 proxy for the browser backend")
	cmd.PersistentFlags().String("timeout", "30s", "Hard timeout for backend requests")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
}
