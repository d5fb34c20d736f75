package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/copenmusic/concert-scraper/internal/concert"
	"github.com/copenmusic/concert-scraper/internal/logger"
	"github.com/copenmusic/concert-scraper/internal/scrape"
)

func testDataset() scrape.UnifiedDataset {
	price := 350.0
	concerts := []concert.Concert{
		{
			ID: "kb_hallen-test-band-25-12-2026", Name: "Test Band",
			Date: "2026-12-25", Time: "20:00", Status: concert.StatusSoldOut,
			URL: "https://kbhallen.dk/event/test-band", Support: "The Openers",
			Price: &price, VenueID: "kb_hallen", VenueName: "K.B. Hallen",
		},
		{
			ID: "pumpehuset-kwamie-liv-2026-03-27", Name: "Kwamie Liv",
			Date: "2026-03-27", Time: "19:00", Status: concert.StatusAvailable,
			URL: "https://pumpehuset.dk/event/kwamie-liv",
			VenueID: "pumpehuset", VenueName: "Pumpehuset",
		},
	}

	return scrape.UnifiedDataset{
		LastUpdated: "2026-01-01T06:00:00Z",
		Metadata: scrape.DatasetMetadata{
			ScrapedAt:        "2026-01-01T06:00:00Z",
			TotalVenues:      3,
			SuccessfulVenues: 2,
			TotalConcerts:    2,
			UpcomingConcerts: 2,
			VenuesCount:      3,
		},
		Venues: map[string]scrape.VenueListing{
			"kb_hallen": {
				VenueName: "K.B. Hallen",
				Concerts:  concerts[:1],
				Metadata:  scrape.VenueMetadata{TotalConcerts: 1, Status: scrape.StatusSuccess},
			},
			"pumpehuset": {
				VenueName: "Pumpehuset",
				Concerts:  concerts[1:],
				Metadata:  scrape.VenueMetadata{TotalConcerts: 1, Status: scrape.StatusSuccess},
			},
			"vega": {
				VenueName: "VEGA",
				Concerts:  []concert.Concert{},
				Metadata:  scrape.VenueMetadata{Status: scrape.StatusError, Error: "Failed to fetch page"},
			},
		},
		AllConcerts: []concert.Concert{concerts[1], concerts[0]},
		Upcoming:    []concert.Concert{concerts[1], concerts[0]},
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concerts.json")

	if err := WriteJSON(testDataset(), path); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var ds scrape.UnifiedDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if ds.LastUpdated != "2026-01-01T06:00:00Z" {
		t.Errorf("unexpected last_updated: %q", ds.LastUpdated)
	}
	if len(ds.AllConcerts) != 2 {
		t.Errorf("expected 2 concerts, got %d", len(ds.AllConcerts))
	}
	if ds.Venues["vega"].Metadata.Error != "Failed to fetch page" {
		t.Error("expected venue error to survive the round trip")
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concerts.csv")

	if err := WriteCSV(testDataset(), path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	header := strings.Join(rows[0], ",")
	if header != "id,name,date,time,status,venue,venue_name,support,genre,price,url" {
		t.Errorf("unexpected header: %s", header)
	}

	// Rows follow all_concerts order; second row is the priced concert.
	if rows[2][1] != "Test Band" || rows[2][9] != "350" {
		t.Errorf("unexpected row: %v", rows[2])
	}
	if rows[1][9] != "" {
		t.Errorf("expected empty price cell, got %q", rows[1][9])
	}
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concerts.md")

	if err := WriteMarkdown(testDataset(), path); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"# Copenhagen Concert Listings",
		"## K.B. Hallen",
		"### Test Band",
		"- **Support:** The Openers",
		"## VEGA",
		"No concerts found or scraping failed.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	// Venues render in sorted id order.
	if strings.Index(text, "## K.B. Hallen") > strings.Index(text, "## Pumpehuset") {
		t.Error("expected venues in sorted order")
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	log := logger.New(logger.LevelError, &bytes.Buffer{})

	err := WriteAll(testDataset(), dir, []string{"json", "csv", "markdown", "xml"}, log)
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	for _, name := range []string{"concerts.json", "concerts.csv", "concerts.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}
