package concert

import "strings"

// Status is the normalized availability of a concert's tickets.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusSoldOut     Status = "sold_out"
	StatusWaitingList Status = "waiting_list"
	StatusFewTickets  Status = "few_tickets"
)

// RawRecord is a venue-native field mapping as produced by a venue parser.
// Keys are venue-dependent; the normalizer only looks at a conventional set
// (name, date, time, status, url, support, genre, price).
type RawRecord map[string]string

// Concert is the unified schema all venues are mapped into.
// A Concert is immutable once constructed.
type Concert struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"` // YYYY-MM-DD when normalization recognized the input
	Time      string    `json:"time"` // HH:MM, may be empty
	Status    Status    `json:"status"`
	URL       string    `json:"url"`
	Support   string    `json:"support,omitempty"`
	Genre     string    `json:"genre,omitempty"`
	Price     *float64  `json:"price"`
	VenueID   string    `json:"venue"`
	VenueName string    `json:"venue_name"`
	Raw       RawRecord `json:"raw_data,omitempty"` // kept for diagnostics only
}

// GenerateID creates a deterministic ID from venue, name and date.
// Two records that normalize to the same triple collide onto the same ID;
// both are kept in output (see Validate and the orchestrator merge).
func GenerateID(venueID, name, date string) string {
	n := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	d := strings.NewReplacer(".", "-", "/", "-").Replace(date)
	return venueID + "-" + n + "-" + d
}

// Validate reports whether a normalized concert carries the required
// fields. Name, date and URL must all be non-empty; anything else is
// optional.
func Validate(c Concert) bool {
	return c.Name != "" && c.Date != "" && c.URL != ""
}
