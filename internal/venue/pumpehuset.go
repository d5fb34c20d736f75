package venue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/copenmusic/concert-scraper/internal/concert"
)

// Pumpehuset parses the pumpehuset.dk program page. Events sit in banner
// containers carrying a "27. mar 2026" style date; the artist name lives
// on the enclosing link or the following element.
type Pumpehuset struct{}

// NewPumpehuset creates the Pumpehuset parser.
func NewPumpehuset() *Pumpehuset {
	return &Pumpehuset{}
}

var pumpeDatePattern = regexp.MustCompile(`(\d{1,2})\.\s*(\p{L}+)\s*(\d{4})`)

var danishMonths = map[string]int{
	"jan": 1, "januar": 1,
	"feb": 2, "februar": 2,
	"mar": 3, "marts": 3,
	"apr": 4, "april": 4,
	"maj": 5,
	"jun": 6, "juni": 6,
	"jul": 7, "juli": 7,
	"aug": 8, "august": 8,
	"sep": 9, "september": 9,
	"okt": 10, "oktober": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

var pumpeNoiseText = map[string]bool{
	"mere info":  true,
	"køb billet": true,
}

// Parse extracts concerts from the program page's event banners.
func (p *Pumpehuset) Parse(doc *goquery.Document) ([]concert.RawRecord, error) {
	records := make([]concert.RawRecord, 0)

	doc.Find("div.single-event-banner-text").Each(func(i int, banner *goquery.Selection) {
		m := pumpeDatePattern.FindStringSubmatch(banner.Text())
		if m == nil {
			return
		}
		day, month, year := m[1], m[2], m[3]

		name := artistFor(banner)
		if name == "" {
			return
		}

		monthNum, ok := danishMonths[strings.ToLower(month)]
		if !ok {
			monthNum = 1
		}
		dayNum, _ := strconv.Atoi(day)

		records = append(records, concert.RawRecord{
			"name": name,
			"date": fmt.Sprintf("%s-%02d-%02d", year, monthNum, dayNum),
			// The program page shows no start times; assume the usual
			// evening slot.
			"time":    "19:00",
			"status":  "Tilgængelig",
			"url":     findEventURL(doc, name, "https://pumpehuset.dk", "/event/", "/arrangement/"),
			"support": "",
			"genre":   "",
			"price":   "",
		})
	})

	return records, nil
}

// artistFor finds the artist name for a banner: the enclosing link's text
// when the banner sits inside one, otherwise the next sibling element.
func artistFor(banner *goquery.Selection) string {
	if link := banner.ParentsFiltered("a").First(); link.Length() > 0 {
		// The link text contains the banner's date text too; strip it.
		name := strings.TrimSpace(strings.Replace(link.Text(), banner.Text(), "", 1))
		if name != "" {
			return name
		}
	}

	next := strings.TrimSpace(banner.Next().Text())
	if len(next) > 2 && !pumpeNoiseText[strings.ToLower(next)] {
		return next
	}
	return ""
}
