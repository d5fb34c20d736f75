package scrape

import (
	"time"

	"github.com/copenmusic/concert-scraper/internal/concert"
)

// RunStatus marks a venue result or run as a whole. A venue is binary:
// it either produced a concert list or an error, never both.
type RunStatus string

const (
	StatusSuccess RunStatus = "success"
	StatusError   RunStatus = "error"
)

// VenueMetadata carries the bookkeeping for one venue's scrape.
type VenueMetadata struct {
	TotalConcerts   int       `json:"total_concerts"`
	ScrapedAt       string    `json:"scraped_at"` // RFC3339, job start
	DurationSeconds float64   `json:"duration_seconds"`
	Status          RunStatus `json:"status"`
	Error           string    `json:"error,omitempty"`
}

// VenueResult is the outcome of one venue's scrape job: either a sorted
// concert list or an isolated error. Never mutated after creation.
type VenueResult struct {
	VenueID   string            `json:"venue_id"`
	VenueName string            `json:"venue_name"`
	Concerts  []concert.Concert `json:"concerts"`
	Metadata  VenueMetadata     `json:"metadata"`
}

// RunMetadata summarizes one orchestrator run across all venues.
type RunMetadata struct {
	ScrapedAt        string  `json:"scraped_at"`
	DurationSeconds  float64 `json:"duration_seconds"`
	TotalVenues      int     `json:"total_venues"`
	SuccessfulVenues int     `json:"successful_venues"`
	TotalConcerts    int     `json:"total_concerts"`
}

// ScrapeRun aggregates every venue's result for one invocation.
type ScrapeRun struct {
	Metadata RunMetadata            `json:"metadata"`
	Venues   map[string]VenueResult `json:"venues"`
}

func successResult(venueID, venueName string, concerts []concert.Concert, startedAt time.Time) VenueResult {
	return VenueResult{
		VenueID:   venueID,
		VenueName: venueName,
		Concerts:  concerts,
		Metadata: VenueMetadata{
			TotalConcerts:   len(concerts),
			ScrapedAt:       startedAt.UTC().Format(time.RFC3339),
			DurationSeconds: time.Since(startedAt).Seconds(),
			Status:          StatusSuccess,
		},
	}
}

func errorResult(venueID, venueName, message string, startedAt time.Time) VenueResult {
	return VenueResult{
		VenueID:   venueID,
		VenueName: venueName,
		Concerts:  []concert.Concert{},
		Metadata: VenueMetadata{
			ScrapedAt:       startedAt.UTC().Format(time.RFC3339),
			DurationSeconds: time.Since(startedAt).Seconds(),
			Status:          StatusError,
			Error:           message,
		},
	}
}
