package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/copenmusic/concert-scraper/internal/concert"
	"github.com/copenmusic/concert-scraper/internal/config"
	"github.com/copenmusic/concert-scraper/internal/fetch"
	"github.com/copenmusic/concert-scraper/internal/logger"
	"github.com/copenmusic/concert-scraper/internal/venue"
)

// Runner is one venue's scrape job from the orchestrator's point of view:
// it always completes with a VenueResult, success or error.
type Runner interface {
	VenueID() string
	Run(ctx context.Context) VenueResult
}

// Job drives a single venue end to end: fetch the page, parse raw
// records, normalize, validate, sort. Every failure mode is converted to
// an error VenueResult at the job boundary so one venue can never take
// down the run.
type Job struct {
	cfg     config.ScraperConfig
	fetcher fetch.PageFetcher
	parser  venue.Parser
	log     *logger.Logger
}

// NewJob wires a job from its collaborators. The logger is tagged with
// the venue id so all job output is attributable.
func NewJob(cfg config.ScraperConfig, fetcher fetch.PageFetcher, parser venue.Parser, log *logger.Logger) *Job {
	return &Job{
		cfg:     cfg,
		fetcher: fetcher,
		parser:  parser,
		log:     log.With(logger.Fields{"venue": cfg.VenueID}),
	}
}

// VenueID returns the venue this job scrapes.
func (j *Job) VenueID() string { return j.cfg.VenueID }

// Run executes the job. It never returns an error: fetch exhaustion,
// parser failures and parser panics all become an error VenueResult.
func (j *Job) Run(ctx context.Context) (result VenueResult) {
	startedAt := time.Now()
	j.log.Info("starting scraper", logger.Fields{"url": j.cfg.URL})

	defer func() {
		if r := recover(); r != nil {
			j.log.Error("scraper panicked", nil, fmt.Errorf("%v", r))
			result = errorResult(j.cfg.VenueID, j.cfg.VenueName, fmt.Sprintf("scraper panicked: %v", r), startedAt)
		}
	}()

	doc, err := j.fetcher.Fetch(ctx, j.cfg.URL)
	if err != nil {
		return errorResult(j.cfg.VenueID, j.cfg.VenueName, "Failed to fetch page", startedAt)
	}

	raws, err := j.parser.Parse(doc)
	if err != nil {
		j.log.Error("parser failed", nil, err)
		return errorResult(j.cfg.VenueID, j.cfg.VenueName, err.Error(), startedAt)
	}
	j.log.Info("parsed raw concert entries", logger.Fields{"count": len(raws)})

	concerts := make([]concert.Concert, 0, len(raws))
	for _, raw := range raws {
		c := concert.Normalize(raw, j.cfg.VenueID, j.cfg.VenueName)
		if !concert.Validate(c) {
			j.log.Warn("dropping invalid concert", logger.Fields{"name": raw["name"]})
			continue
		}
		concerts = append(concerts, c)
	}

	concert.SortByDateTime(concerts)

	j.log.Info("scraper finished", logger.Fields{
		"concerts": len(concerts),
		"duration": time.Since(startedAt).String(),
	})
	return successResult(j.cfg.VenueID, j.cfg.VenueName, concerts, startedAt)
}
