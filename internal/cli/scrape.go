package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/copenmusic/concert-scraper/internal/config"
	"github.com/copenmusic/concert-scraper/internal/logger"
	"github.com/copenmusic/concert-scraper/internal/output"
	"github.com/copenmusic/concert-scraper/internal/scrape"
	"github.com/copenmusic/concert-scraper/internal/storage"
)

var flagSequential bool

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape all enabled venues and write the unified dataset",
		RunE:  runScrape,
	}

	cmd.Flags().BoolVar(&flagSequential, "sequential", false, "Run scrapers one at a time instead of concurrently")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	venues := cfg.EnabledVenues()
	jobs, err := scrape.BuildJobs(venues, log)
	if err != nil {
		return fmt.Errorf("building scrape jobs: %w", err)
	}

	maxConcurrent := cfg.Global.Performance.MaxConcurrentScrapers
	if flagSequential {
		maxConcurrent = 1
	}

	orchestrator, err := scrape.NewOrchestrator(jobs, maxConcurrent, log)
	if err != nil {
		return err
	}

	dataset := orchestrator.Execute(cmd.Context())

	if err := output.WriteAll(dataset, cfg.Global.Output.Directory, cfg.Global.Output.Formats, log); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	// Compare against the previous run so new listings are visible in the
	// run log, then persist this run as the next baseline.
	store, err := storage.New(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	previous, err := store.LoadDataset()
	if err != nil {
		log.Warn("could not load previous snapshot", logger.Fields{"error": err.Error()})
	}
	fresh := storage.NewConcerts(previous, dataset)
	for _, c := range fresh {
		log.Info("new concert", logger.Fields{
			"venue": c.VenueID,
			"name":  c.Name,
			"date":  c.Date,
		})
	}
	if err := store.SaveDataset(dataset); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	if flagVerbose {
		for name, stats := range orchestrator.Metrics().Snapshot() {
			log.Debug("run metric", logger.Fields{"metric": name, "value": stats})
		}
	}

	fmt.Printf("Scraped %d venues (%d successful): %d concerts, %d upcoming, %d new\n",
		dataset.Metadata.TotalVenues,
		dataset.Metadata.SuccessfulVenues,
		dataset.Metadata.TotalConcerts,
		dataset.Metadata.UpcomingConcerts,
		len(fresh))

	return nil
}

func newLogger() *logger.Logger {
	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	return logger.New(level, os.Stderr)
}
