package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/copenmusic/concert-scraper/internal/config"
	"github.com/copenmusic/concert-scraper/internal/scrape"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print a summary of the latest scrape run",
		Long: `Reads the JSON dataset from the output directory and prints run
totals. When GITHUB_OUTPUT is set, the totals are also appended there
as step outputs for CI workflows.`,
		RunE: runSummary,
	}
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	path := filepath.Join(cfg.Global.Output.Directory, "concerts.json")
	data, err := os.ReadFile(path)
	if err != nil {
		writeGitHubOutputs(map[string]string{
			"summary":           "Failed to scrape concerts",
			"total_concerts":    "0",
			"upcoming_concerts": "0",
			"venues_count":      "0",
		})
		return fmt.Errorf("reading dataset: %w", err)
	}

	var ds scrape.UnifiedDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return fmt.Errorf("parsing dataset: %w", err)
	}

	fmt.Printf("Total concerts: %d\n", ds.Metadata.TotalConcerts)
	fmt.Printf("Upcoming concerts: %d\n", ds.Metadata.UpcomingConcerts)
	fmt.Printf("Venues: %d\n", ds.Metadata.VenuesCount)
	fmt.Printf("Last updated: %s\n", ds.LastUpdated)

	writeGitHubOutputs(map[string]string{
		"summary": fmt.Sprintf("Found %d concerts (%d upcoming) from %d venues",
			ds.Metadata.TotalConcerts, ds.Metadata.UpcomingConcerts, ds.Metadata.VenuesCount),
		"total_concerts":    fmt.Sprintf("%d", ds.Metadata.TotalConcerts),
		"upcoming_concerts": fmt.Sprintf("%d", ds.Metadata.UpcomingConcerts),
		"venues_count":      fmt.Sprintf("%d", ds.Metadata.VenuesCount),
	})

	return nil
}

// writeGitHubOutputs appends step outputs when running inside a GitHub
// Actions workflow. Outside CI it does nothing.
func writeGitHubOutputs(outputs map[string]string) {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	for key, value := range outputs {
		fmt.Fprintf(f, "%s=%s\n", key, value)
	}
}
