package venue

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func TestKBHallenParse(t *testing.T) {
	p := NewKBHallen()
	p.Now = func() time.Time {
		return time.Date(2026, 12, 1, 10, 0, 0, 0, time.UTC)
	}

	records, err := p.Parse(loadFixture(t, "kb_hallen.html"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first["name"] != "Test Band" {
		t.Errorf("unexpected name: %q", first["name"])
	}
	if first["date"] != "2026-12-25" {
		t.Errorf("unexpected date: %q", first["date"])
	}
	if first["time"] != "20:00" {
		t.Errorf("unexpected time: %q", first["time"])
	}
	if first["status"] != "Udsolgt" {
		t.Errorf("unexpected status: %q", first["status"])
	}
	if first["support"] != "The Openers" {
		t.Errorf("unexpected support: %q", first["support"])
	}
	if first["url"] != "https://kbhallen.dk/event/test-band-2026" {
		t.Errorf("unexpected url: %q", first["url"])
	}

	second := records[1]
	if second["name"] != "Another Act" || second["support"] != "Guest Star" {
		t.Errorf("expected '+' line to split into artist and support, got %q / %q",
			second["name"], second["support"])
	}
	if second["date"] != "2026-12-05" {
		t.Errorf("unexpected date: %q", second["date"])
	}
	if second["time"] != "21:00" {
		t.Errorf("unexpected time: %q", second["time"])
	}
	if second["status"] != "Få billetter" {
		t.Errorf("unexpected status: %q", second["status"])
	}
	if second["url"] != "" {
		t.Errorf("expected empty url when no link matches, got %q", second["url"])
	}

	third := records[2]
	if third["name"] != "Quiet Ensemble" {
		t.Errorf("unexpected name: %q", third["name"])
	}
	if third["date"] != "2026-12-12" {
		t.Errorf("unexpected date: %q", third["date"])
	}
	if third["status"] != "Tilgængelig" {
		t.Errorf("unexpected status: %q", third["status"])
	}
	if third["url"] != "https://kbhallen.dk/event/quiet-ensemble" {
		t.Errorf("unexpected url: %q", third["url"])
	}
}

func TestKBHallenResolveDate(t *testing.T) {
	p := NewKBHallen()
	p.Now = func() time.Time {
		return time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		day      string
		weekday  string
		expected string
	}{
		{"25", "Fredag", "2026-12-25"},
		{"5", "Lørdag", "2026-12-05"},
		{"1", "Fredag", "2027-01-01"},  // next matching Friday the 1st
		{"25", "Blursday", "2026-12-25"}, // unknown weekday falls back to current month
		{"x", "Fredag", ""},
	}

	for _, tt := range tests {
		t.Run(tt.day+"_"+tt.weekday, func(t *testing.T) {
			if got := p.resolveDate(tt.day, tt.weekday); got != tt.expected {
				t.Errorf("resolveDate(%q, %q) = %q, expected %q", tt.day, tt.weekday, got, tt.expected)
			}
		})
	}
}

func TestNewParser(t *testing.T) {
	for _, name := range []string{"kb_hallen", "pumpehuset"} {
		if _, err := NewParser(testScraperConfig(name)); err != nil {
			t.Errorf("NewParser(%q) failed: %v", name, err)
		}
	}

	if _, err := NewParser(testScraperConfig("royal_arena")); err == nil {
		t.Error("expected error for unknown parser")
	}
}
