package scrape

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/copenmusic/concert-scraper/internal/config"
	"github.com/copenmusic/concert-scraper/internal/fetch"
	"github.com/copenmusic/concert-scraper/internal/logger"
	"github.com/copenmusic/concert-scraper/internal/venue"
)

// Orchestrator fans a set of scrape jobs out over a bounded worker pool
// and merges their results into one dataset. Job outcomes are
// independent: a venue that fails only degrades coverage, never the run.
type Orchestrator struct {
	jobs          []Runner
	maxConcurrent int
	log           *logger.Logger
	metrics       *logger.Metrics

	// Now supplies the run timestamp and the upcoming-filter boundary.
	// Overridable in tests.
	Now func() time.Time
}

// NewOrchestrator creates an orchestrator over prebuilt jobs.
// maxConcurrent bounds parallel jobs; 1 gives strictly sequential
// execution with identical merged output.
func NewOrchestrator(jobs []Runner, maxConcurrent int, log *logger.Logger) (*Orchestrator, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no venues configured")
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Orchestrator{
		jobs:          jobs,
		maxConcurrent: maxConcurrent,
		log:           log,
		metrics:       logger.NewMetrics(),
		Now:           time.Now,
	}, nil
}

// BuildJobs resolves venue configurations into runnable scrape jobs.
// Each job owns its own fetch client so venues never share a rate-limit
// timer or connection state. An unknown parser key is a configuration
// error and aborts before anything is fetched.
func BuildJobs(venues []config.ScraperConfig, log *logger.Logger) ([]Runner, error) {
	jobs := make([]Runner, 0, len(venues))
	for _, cfg := range venues {
		parser, err := venue.NewParser(cfg)
		if err != nil {
			return nil, fmt.Errorf("venue %s: %w", cfg.VenueID, err)
		}
		jobs = append(jobs, NewJob(cfg, fetch.New(cfg.RateLimit, log), parser, log))
	}
	return jobs, nil
}

// Run executes all jobs and collects their results into a ScrapeRun.
// Up to maxConcurrent jobs run in parallel; the rest queue for a free
// worker. Run blocks until every job has completed.
func (o *Orchestrator) Run(ctx context.Context) ScrapeRun {
	startedAt := o.Now()
	workers := o.maxConcurrent
	if len(o.jobs) < workers {
		workers = len(o.jobs)
	}
	o.log.Info("starting concert scraping", logger.Fields{
		"venues":  len(o.jobs),
		"workers": workers,
	})

	pending := make(chan Runner)
	results := make(chan VenueResult, len(o.jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range pending {
				jobStarted := time.Now()
				r := job.Run(ctx)
				o.metrics.RecordTiming("venue.scrape", time.Since(jobStarted))
				results <- r
			}
		}()
	}

	go func() {
		for _, job := range o.jobs {
			pending <- job
		}
		close(pending)
		wg.Wait()
		close(results)
	}()

	// Results are keyed by venue id, so completion order does not matter.
	venues := make(map[string]VenueResult, len(o.jobs))
	for r := range results {
		venues[r.VenueID] = r
		if r.Metadata.Status == StatusSuccess {
			o.metrics.IncrCounter("venues.success", 1)
		} else {
			o.metrics.IncrCounter("venues.error", 1)
			o.log.Error("scraper failed", logger.Fields{"venue": r.VenueID}, fmt.Errorf("%s", r.Metadata.Error))
		}
	}

	run := ScrapeRun{
		Metadata: RunMetadata{
			ScrapedAt:        startedAt.UTC().Format(time.RFC3339),
			DurationSeconds:  time.Since(startedAt).Seconds(),
			TotalVenues:      len(o.jobs),
			SuccessfulVenues: 0,
			TotalConcerts:    0,
		},
		Venues: venues,
	}
	for _, r := range venues {
		if r.Metadata.Status == StatusSuccess {
			run.Metadata.SuccessfulVenues++
		}
		run.Metadata.TotalConcerts += r.Metadata.TotalConcerts
	}

	o.log.Info("scraping completed", logger.Fields{
		"duration":          run.Metadata.DurationSeconds,
		"successful_venues": run.Metadata.SuccessfulVenues,
		"total_concerts":    run.Metadata.TotalConcerts,
	})
	return run
}

// Execute is the run-level entry point: scrape every venue, then merge
// the results into the unified dataset.
func (o *Orchestrator) Execute(ctx context.Context) UnifiedDataset {
	run := o.Run(ctx)
	return BuildDataset(run, o.Now().Format("2006-01-02"))
}

// Metrics exposes the run's metrics tracker.
func (o *Orchestrator) Metrics() *logger.Metrics { return o.metrics }
