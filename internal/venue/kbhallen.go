package venue

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/copenmusic/concert-scraper/internal/concert"
)

// KBHallen parses the kbhallen.dk calendar page. Concert info is spread
// across month blocks as "25.Onsdag — 20:00" headers followed by artist
// and ticket-status lines.
type KBHallen struct {
	// Now supplies "today" for resolving day-of-month plus weekday into a
	// full date. Overridable in tests.
	Now func() time.Time
}

// NewKBHallen creates the K.B. Hallen parser.
func NewKBHallen() *KBHallen {
	return &KBHallen{Now: time.Now}
}

// Header shape: "25.Onsdag — 20:00". The dash arrives as either the
// literal character or the &mdash; entity depending on how the page was
// fetched.
var kbHeaderPattern = regexp.MustCompile(`(\d{1,2})\.(\p{L}+)\s*(?:—|&mdash;)\s*(\d{1,2}):(\d{2})`)

var kbNoiseLines = map[string]bool{
	"info":         true,
	"læs mere":     true,
	"udsolgt":      true,
	"venteliste":   true,
	"få billetter": true,
}

var danishWeekdays = map[string]time.Weekday{
	"mandag": time.Monday, "monday": time.Monday,
	"tirsdag": time.Tuesday, "tuesday": time.Tuesday,
	"onsdag": time.Wednesday, "wednesday": time.Wednesday,
	"torsdag": time.Thursday, "thursday": time.Thursday,
	"fredag": time.Friday, "friday": time.Friday,
	"lørdag": time.Saturday, "saturday": time.Saturday,
	"søndag": time.Sunday, "sunday": time.Sunday,
}

// Parse extracts concerts from the calendar's month blocks.
func (p *KBHallen) Parse(doc *goquery.Document) ([]concert.RawRecord, error) {
	records := make([]concert.RawRecord, 0)

	doc.Find("div.list-month").Each(func(i int, month *goquery.Selection) {
		text := month.Text()

		// Slice the month text into per-concert blocks: each block runs
		// from one date/time header to the next.
		headers := kbHeaderPattern.FindAllStringSubmatchIndex(text, -1)
		for h, loc := range headers {
			day := text[loc[2]:loc[3]]
			weekday := text[loc[4]:loc[5]]
			hour := text[loc[6]:loc[7]]
			minute := text[loc[8]:loc[9]]

			end := len(text)
			if h+1 < len(headers) {
				end = headers[h+1][0]
			}
			block := text[loc[1]:end]

			name, support := extractArtist(block)
			if name == "" {
				continue
			}

			records = append(records, concert.RawRecord{
				"name":    name,
				"date":    p.resolveDate(day, weekday),
				"time":    padHour(hour) + ":" + minute,
				"status":  kbStatus(block),
				"url":     findEventURL(doc, name, "https://kbhallen.dk", "/event/"),
				"support": support,
				"genre":   "",
				"price":   "",
			})
		}
	})

	return records, nil
}

// extractArtist picks the artist and support act out of a concert block.
// The artist is the first substantial line; support acts hide behind
// "support:", "with special guest:" or a "Main + Support" line.
func extractArtist(block string) (name, support string) {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || kbNoiseLines[strings.ToLower(line)] {
			continue
		}

		lower := strings.ToLower(line)
		if idx := strings.Index(lower, "with special guest:"); idx >= 0 {
			support = strings.TrimSpace(line[idx+len("with special guest:"):])
			continue
		}
		if idx := strings.Index(lower, "support:"); idx >= 0 {
			support = strings.TrimSpace(line[idx+len("support:"):])
			continue
		}
		if name == "" && strings.Contains(line, "+") {
			parts := strings.SplitN(line, "+", 2)
			name = strings.TrimSpace(parts[0])
			support = strings.TrimSpace(parts[1])
			continue
		}
		if name == "" && len(line) > 2 && startsUpper(line) && !strings.Contains(line, "—") {
			name = line
		}
	}
	return name, support
}

func padHour(h string) string {
	if len(h) < 2 {
		return "0" + h
	}
	return h
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func kbStatus(block string) string {
	lower := strings.ToLower(block)
	switch {
	case strings.Contains(lower, "udsolgt"):
		return "Udsolgt"
	case strings.Contains(lower, "venteliste"):
		return "Venteliste"
	case strings.Contains(lower, "få billetter"):
		return "Få billetter"
	default:
		return "Tilgængelig"
	}
}

// resolveDate turns a day-of-month plus Danish weekday into the next
// matching ISO date. The calendar never prints month or year, so the pair
// is resolved against today, scanning up to four months ahead.
func (p *KBHallen) resolveDate(day, weekday string) string {
	dayNum, err := strconv.Atoi(day)
	if err != nil {
		return ""
	}
	now := p.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if target, ok := danishWeekdays[strings.ToLower(weekday)]; ok {
		for offset := 0; offset < 4*31; offset++ {
			d := today.AddDate(0, 0, offset)
			if d.Day() == dayNum && d.Weekday() == target {
				return d.Format("2006-01-02")
			}
		}
	}

	// Unknown weekday: assume the current month, or the next one if the
	// day has already passed.
	d := time.Date(today.Year(), today.Month(), dayNum, 0, 0, 0, 0, time.UTC)
	if d.Before(today) || d.Day() != dayNum {
		d = time.Date(today.Year(), today.Month()+1, dayNum, 0, 0, 0, 0, time.UTC)
	}
	return d.Format("2006-01-02")
}

// findEventURL scans the page's event links for one whose text matches the
// artist name in either direction.
func findEventURL(doc *goquery.Document, name, base string, pathFragments ...string) string {
	lowerName := strings.ToLower(name)
	found := ""
	doc.Find("a[href]").EachWithBreak(func(i int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		matched := false
		for _, fragment := range pathFragments {
			if strings.Contains(href, fragment) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}
		text := strings.ToLower(strings.TrimSpace(link.Text()))
		if text == "" {
			return true
		}
		if strings.Contains(text, lowerName) || strings.Contains(lowerName, text) {
			if strings.HasPrefix(href, "/") {
				found = base + href
			} else {
				found = href
			}
			return false
		}
		return true
	})
	return found
}
