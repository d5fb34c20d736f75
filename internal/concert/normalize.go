package concert

import (
	"regexp"
	"strconv"
	"strings"
)

// Date shapes recognized by NormalizeDate. Danish venue pages mix
// DD.MM.YYYY and DD/MM/YYYY; some already emit ISO dates.
var (
	datePatternDotted = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)
	datePatternSlash  = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	datePatternISO    = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

	bareHourPattern = regexp.MustCompile(`^\d{1,2}$`)
)

// statusVocabulary maps source-language status phrases (lowercased,
// trimmed) to the normalized status enum. Unrecognized phrases default to
// StatusAvailable.
var statusVocabulary = map[string]Status{
	"udsolgt":      StatusSoldOut,
	"sold out":     StatusSoldOut,
	"venteliste":   StatusWaitingList,
	"waiting list": StatusWaitingList,
	"få billetter": StatusFewTickets,
	"few tickets":  StatusFewTickets,
	"tilgængelig":  StatusAvailable,
	"available":    StatusAvailable,
}

// Normalize converts a raw venue record into the canonical Concert shape.
// It is total: missing fields become empty or default values, and inputs
// that match no known pattern pass through unchanged. It never fails;
// dropping incomplete records is the validator's job.
func Normalize(raw RawRecord, venueID, venueName string) Concert {
	return Concert{
		ID:        GenerateID(venueID, raw["name"], raw["date"]),
		Name:      strings.TrimSpace(raw["name"]),
		Date:      NormalizeDate(raw["date"]),
		Time:      NormalizeTime(raw["time"]),
		Status:    NormalizeStatus(raw["status"]),
		URL:       raw["url"],
		Support:   raw["support"],
		Genre:     raw["genre"],
		Price:     parsePrice(raw["price"]),
		VenueID:   venueID,
		VenueName: venueName,
		Raw:       raw,
	}
}

// NormalizeDate rewrites DD.MM.YYYY, DD/MM/YYYY and YYYY-MM-DD dates to
// zero-padded YYYY-MM-DD. Anything else passes through unchanged so the
// record survives to output even when the venue page format drifts.
func NormalizeDate(date string) string {
	if m := datePatternDotted.FindStringSubmatch(date); m != nil {
		return isoDate(m[3], m[2], m[1])
	}
	if m := datePatternSlash.FindStringSubmatch(date); m != nil {
		return isoDate(m[3], m[2], m[1])
	}
	if m := datePatternISO.FindStringSubmatch(date); m != nil {
		return isoDate(m[1], m[2], m[3])
	}
	return date
}

func isoDate(year, month, day string) string {
	return year + "-" + pad2(month) + "-" + pad2(day)
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// NormalizeTime ensures HH:MM where possible. A bare hour like "20"
// becomes "20:00"; anything already containing a colon, or not looking
// like an hour at all, passes through unchanged.
func NormalizeTime(t string) string {
	if t == "" || strings.Contains(t, ":") {
		return t
	}
	if bareHourPattern.MatchString(t) {
		return pad2(t) + ":00"
	}
	return t
}

// NormalizeStatus maps a source status phrase to the status enum.
func NormalizeStatus(status string) Status {
	if s, ok := statusVocabulary[strings.ToLower(strings.TrimSpace(status))]; ok {
		return s
	}
	return StatusAvailable
}

func parsePrice(price string) *float64 {
	p := strings.TrimSpace(price)
	if p == "" {
		return nil
	}
	v, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return nil
	}
	return &v
}
