package scrape

import (
	"testing"
	"time"

	"github.com/copenmusic/concert-scraper/internal/concert"
)

func testRun(results ...VenueResult) ScrapeRun {
	run := ScrapeRun{
		Metadata: RunMetadata{
			ScrapedAt:   "2026-06-01T12:00:00Z",
			TotalVenues: len(results),
		},
		Venues: make(map[string]VenueResult, len(results)),
	}
	for _, r := range results {
		run.Venues[r.VenueID] = r
		if r.Metadata.Status == StatusSuccess {
			run.Metadata.SuccessfulVenues++
		}
		run.Metadata.TotalConcerts += r.Metadata.TotalConcerts
	}
	return run
}

func TestBuildDataset(t *testing.T) {
	run := testRun(
		successResult("venue_a", "Venue A", []concert.Concert{
			stubConcert("venue_a", "Past Show", "2026-05-01", "20:00"),
			stubConcert("venue_a", "Future Show", "2026-07-01", "20:00"),
		}, time.Now()),
		successResult("venue_b", "Venue B", []concert.Concert{
			stubConcert("venue_b", "Today Show", "2026-06-01", "19:00"),
		}, time.Now()),
	)

	ds := BuildDataset(run, "2026-06-01")

	if ds.LastUpdated != "2026-06-01T12:00:00Z" {
		t.Errorf("last_updated must be the run start, got %q", ds.LastUpdated)
	}
	if ds.Metadata.TotalConcerts != 3 {
		t.Errorf("total_concerts = %d, want 3", ds.Metadata.TotalConcerts)
	}

	// Globally sorted by (date, time) across venues.
	names := make([]string, 0, len(ds.AllConcerts))
	for _, c := range ds.AllConcerts {
		names = append(names, c.Name)
	}
	expected := []string{"Past Show", "Today Show", "Future Show"}
	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("unexpected order: %v", names)
		}
	}

	// Upcoming includes today's date and is the suffix of all_concerts.
	if len(ds.Upcoming) != 2 {
		t.Fatalf("upcoming = %d, want 2", len(ds.Upcoming))
	}
	if ds.Upcoming[0].Name != "Today Show" || ds.Upcoming[1].Name != "Future Show" {
		t.Errorf("unexpected upcoming: %v, %v", ds.Upcoming[0].Name, ds.Upcoming[1].Name)
	}
	if ds.Metadata.UpcomingConcerts != 2 {
		t.Errorf("upcoming_concerts = %d, want 2", ds.Metadata.UpcomingConcerts)
	}
}

func TestBuildDatasetErroredVenue(t *testing.T) {
	errored := errorResult("venue_a", "Venue A", "Failed to fetch page", time.Now())
	// Simulate stale concerts sneaking into an error result; the merge
	// must not publish them.
	errored.Concerts = []concert.Concert{stubConcert("venue_a", "Ghost", "2099-01-01", "")}

	run := testRun(
		errored,
		successResult("venue_b", "Venue B", []concert.Concert{
			stubConcert("venue_b", "Real", "2099-01-01", "20:00"),
		}, time.Now()),
	)

	ds := BuildDataset(run, "2026-06-01")

	if len(ds.Venues["venue_a"].Concerts) != 0 {
		t.Error("errored venue must appear with an empty concert list")
	}
	if len(ds.AllConcerts) != 1 || ds.AllConcerts[0].Name != "Real" {
		t.Errorf("unexpected all_concerts: %v", ds.AllConcerts)
	}
	if ds.Metadata.TotalConcerts != 1 {
		t.Errorf("total_concerts = %d, want 1", ds.Metadata.TotalConcerts)
	}
	if ds.Metadata.VenuesCount != 2 {
		t.Errorf("venues_count = %d, want 2", ds.Metadata.VenuesCount)
	}
}

func TestBuildDatasetKeepsIDCollisions(t *testing.T) {
	// Two showtimes of the same name on the same date share an id; both
	// stay in the dataset as separate entries.
	run := testRun(
		successResult("venue_a", "Venue A", []concert.Concert{
			stubConcert("venue_a", "Matinee", "2099-01-01", "15:00"),
			stubConcert("venue_a", "Matinee", "2099-01-01", "20:00"),
		}, time.Now()),
	)

	ds := BuildDataset(run, "2026-06-01")

	if len(ds.AllConcerts) != 2 {
		t.Fatalf("expected both colliding entries, got %d", len(ds.AllConcerts))
	}
	if ds.AllConcerts[0].ID != ds.AllConcerts[1].ID {
		t.Error("expected identical ids for same (venue, name, date)")
	}
}
