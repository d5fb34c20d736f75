package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concert-scraper",
		Short: "Scrape Copenhagen venue websites into a unified concert dataset",
		Long: `A scraper for Copenhagen concert venues.
Fetches each configured venue's listing page, normalizes the concerts
into one dataset and writes it to disk in the configured formats.`,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "venues.yaml", "Path to the venue configuration file")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "~/.local/share/concert-scraper", "Data directory for run snapshots")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSummaryCmd())

	return cmd
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
