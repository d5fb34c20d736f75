// Package venue holds the per-venue page parsers. Each parser turns a
// fetched document into raw records; everything downstream of that
// (normalization, validation, aggregation) is venue-agnostic.
package venue

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/copenmusic/concert-scraper/internal/concert"
	"github.com/copenmusic/concert-scraper/internal/config"
)

// Parser extracts raw concert records from a fetched venue page. One
// implementation per venue page layout; selected by the parser key in the
// venue's configuration.
type Parser interface {
	Parse(doc *goquery.Document) ([]concert.RawRecord, error)
}

// NewParser resolves a venue's configured parser key to an implementation.
// An unknown key is a configuration error and aborts the run before any
// scraping starts.
func NewParser(cfg config.ScraperConfig) (Parser, error) {
	switch cfg.Parser {
	case "kb_hallen":
		return NewKBHallen(), nil
	case "pumpehuset":
		return NewPumpehuset(), nil
	default:
		return nil, fmt.Errorf("unknown parser: %s", cfg.Parser)
	}
}
