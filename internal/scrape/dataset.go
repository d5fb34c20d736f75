package scrape

import (
	"sort"

	"github.com/copenmusic/concert-scraper/internal/concert"
)

// DatasetMetadata extends the run metadata with dataset-level counts.
type DatasetMetadata struct {
	ScrapedAt        string  `json:"scraped_at"`
	DurationSeconds  float64 `json:"duration_seconds"`
	TotalVenues      int     `json:"total_venues"`
	SuccessfulVenues int     `json:"successful_venues"`
	TotalConcerts    int     `json:"total_concerts"`
	UpcomingConcerts int     `json:"upcoming_concerts"`
	VenuesCount      int     `json:"venues_count"`
}

// VenueListing is one venue's slice of the unified dataset. Errored
// venues appear with an empty concert list and their error metadata.
type VenueListing struct {
	VenueName string            `json:"venue_name"`
	Concerts  []concert.Concert `json:"concerts"`
	Metadata  VenueMetadata     `json:"metadata"`
}

// UnifiedDataset is the final product of a run: all venues' concerts
// merged, globally sorted and filtered. Handed to output writers as a
// read-only value.
type UnifiedDataset struct {
	LastUpdated string                  `json:"last_updated"`
	Metadata    DatasetMetadata         `json:"metadata"`
	Venues      map[string]VenueListing `json:"venues"`
	AllConcerts []concert.Concert       `json:"all_concerts"`
	Upcoming    []concert.Concert       `json:"upcoming"`
}

// BuildDataset merges a run's venue results into the unified dataset.
// Merged ordering is a pure function of the inputs: concerts are sorted
// by (date, time) regardless of which venue finished first. The upcoming
// list is the suffix of all_concerts with date >= today; the string
// compare is safe because normalized dates are fixed-width ISO.
func BuildDataset(run ScrapeRun, today string) UnifiedDataset {
	// Concatenate in venue-id order so ties in the stable sort resolve
	// the same way no matter which job finished first.
	venueIDs := make([]string, 0, len(run.Venues))
	for venueID := range run.Venues {
		venueIDs = append(venueIDs, venueID)
	}
	sort.Strings(venueIDs)

	venues := make(map[string]VenueListing, len(run.Venues))
	allConcerts := make([]concert.Concert, 0)

	for _, venueID := range venueIDs {
		r := run.Venues[venueID]
		listing := VenueListing{
			VenueName: r.VenueName,
			Concerts:  r.Concerts,
			Metadata:  r.Metadata,
		}
		if r.Metadata.Status != StatusSuccess {
			listing.Concerts = []concert.Concert{}
		} else {
			allConcerts = append(allConcerts, r.Concerts...)
		}
		venues[venueID] = listing
	}

	concert.SortByDateTime(allConcerts)

	upcoming := make([]concert.Concert, 0, len(allConcerts))
	for _, c := range allConcerts {
		if c.Date >= today {
			upcoming = append(upcoming, c)
		}
	}

	return UnifiedDataset{
		LastUpdated: run.Metadata.ScrapedAt,
		Metadata: DatasetMetadata{
			ScrapedAt:        run.Metadata.ScrapedAt,
			DurationSeconds:  run.Metadata.DurationSeconds,
			TotalVenues:      run.Metadata.TotalVenues,
			SuccessfulVenues: run.Metadata.SuccessfulVenues,
			TotalConcerts:    len(allConcerts),
			UpcomingConcerts: len(upcoming),
			VenuesCount:      len(venues),
		},
		Venues:      venues,
		AllConcerts: allConcerts,
		Upcoming:    upcoming,
	}
}
