// Package output renders the unified dataset to disk in the configured
// formats. All writers are lossless or fixed-projection transforms of the
// same in-memory value; none of them mutate it.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/copenmusic/concert-scraper/internal/logger"
	"github.com/copenmusic/concert-scraper/internal/scrape"
)

// csvColumns is the fixed column set of the flattened concert export.
var csvColumns = []string{
	"id", "name", "date", "time", "status",
	"venue", "venue_name", "support", "genre", "price", "url",
}

// WriteAll writes the dataset to dir in every requested format.
// Unknown format names are reported, not fatal.
func WriteAll(ds scrape.UnifiedDataset, dir string, formats []string, log *logger.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, format := range formats {
		var (
			path string
			err  error
		)
		switch format {
		case "json":
			path = filepath.Join(dir, "concerts.json")
			err = WriteJSON(ds, path)
		case "csv":
			path = filepath.Join(dir, "concerts.csv")
			err = WriteCSV(ds, path)
		case "markdown":
			path = filepath.Join(dir, "concerts.md")
			err = WriteMarkdown(ds, path)
		default:
			log.Warn("skipping unknown output format", logger.Fields{"format": format})
			continue
		}
		if err != nil {
			return fmt.Errorf("writing %s output: %w", format, err)
		}
		log.Info("saved output", logger.Fields{"format": format, "path": path})
	}
	return nil
}

// WriteJSON writes the dataset field for field.
func WriteJSON(ds scrape.UnifiedDataset, path string) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// WriteCSV writes all_concerts flattened to the fixed column set.
func WriteCSV(ds scrape.UnifiedDataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return err
	}

	for _, c := range ds.AllConcerts {
		price := ""
		if c.Price != nil {
			price = strconv.FormatFloat(*c.Price, 'f', -1, 64)
		}
		row := []string{
			c.ID, c.Name, c.Date, c.Time, string(c.Status),
			c.VenueID, c.VenueName, c.Support, c.Genre, price, c.URL,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteMarkdown writes a human-readable report grouped by venue.
func WriteMarkdown(ds scrape.UnifiedDataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# Copenhagen Concert Listings\n\n")
	fmt.Fprintf(f, "Last updated: %s\n\n", ds.LastUpdated)
	fmt.Fprintf(f, "Total concerts: %d\n", ds.Metadata.TotalConcerts)
	fmt.Fprintf(f, "Upcoming concerts: %d\n\n", ds.Metadata.UpcomingConcerts)

	venueIDs := make([]string, 0, len(ds.Venues))
	for id := range ds.Venues {
		venueIDs = append(venueIDs, id)
	}
	sort.Strings(venueIDs)

	for _, id := range venueIDs {
		v := ds.Venues[id]
		fmt.Fprintf(f, "## %s\n\n", v.VenueName)

		if len(v.Concerts) == 0 {
			fmt.Fprintf(f, "No concerts found or scraping failed.\n\n")
			continue
		}
		for _, c := range v.Concerts {
			fmt.Fprintf(f, "### %s\n\n", c.Name)
			fmt.Fprintf(f, "- **Date:** %s at %s\n", c.Date, c.Time)
			fmt.Fprintf(f, "- **Status:** %s\n", c.Status)
			if c.Support != "" {
				fmt.Fprintf(f, "- **Support:** %s\n", c.Support)
			}
			fmt.Fprintf(f, "- **Link:** [%s](%s)\n\n", c.Name, c.URL)
		}
	}
	return nil
}
