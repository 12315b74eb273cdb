// Package cli defines the cobra command tree for the listings tool.
package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/estately/backend/internal/client"
)

const defaultServerURL = "http://localhost:8080"

var (
	flagFormat  string
	flagServer  string
	flagRetries int
	flagBackoff time.Duration
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "listings",
		Short:         "Browse property listings",
		Long:          "Browse the listings served by the estately API: search with filters and sorting, show one property, or list the available filter values.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", serverURLFromEnv(), "API base URL (env LISTINGS_SERVER_URL)")
	root.PersistentFlags().IntVar(&flagRetries, "retries", client.DefaultAttempts, "attempts per request")
	root.PersistentFlags().DurationVar(&flagBackoff, "backoff", client.DefaultBackoff, "wait between attempts")

	root.AddCommand(
		newSearchCmd(),
		newShowCmd(),
		newFacetsCmd(),
	)

	return root
}

func serverURLFromEnv() string {
	if v := os.Getenv("LISTINGS_SERVER_URL"); v != "" {
		return v
	}
	return defaultServerURL
}

// newAPIClient creates an HTTP client from the global flags.
func newAPIClient() *client.Client {
	c := client.New(flagServer)
	c.Attempts = flagRetries
	c.Backoff = flagBackoff
	return c
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
