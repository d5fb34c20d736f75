package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// OutputConfig controls where and in which formats the unified dataset is
// written.
type OutputConfig struct {
	Directory string   `yaml:"directory"`
	Formats   []string `yaml:"formats"`
}

// PerformanceConfig bounds the scrape run.
type PerformanceConfig struct {
	MaxConcurrentScrapers int `yaml:"max_concurrent_scrapers"`
}

// GlobalConfig holds run-wide settings shared by all venues.
type GlobalConfig struct {
	Output      OutputConfig      `yaml:"output"`
	Performance PerformanceConfig `yaml:"performance"`
}

// VenueConfig is the static per-venue entry from venues.yaml.
type VenueConfig struct {
	Name      string            `yaml:"name"`
	URL       string            `yaml:"url"`
	Enabled   bool              `yaml:"enabled"`
	RateLimit float64           `yaml:"rate_limit"` // requests per second ceiling
	Parser    string            `yaml:"parser"`     // registry key, defaults to the venue id
	Extra     map[string]string `yaml:"extra,omitempty"`
}

// Config is the parsed venues.yaml.
type Config struct {
	Global GlobalConfig           `yaml:"global"`
	Venues map[string]VenueConfig `yaml:"venues"`
}

// ScraperConfig is the resolved, immutable configuration handed to one
// scrape job.
type ScraperConfig struct {
	VenueID   string
	VenueName string
	URL       string
	RateLimit float64
	Parser    string
	Extra     map[string]string
}

// Load reads venues.yaml, applies environment overrides and validates the
// result. A .env file next to the working directory is honored when
// present. Configuration problems are the only errors that abort a run
// before any venue is scraped.
func Load(path string) (Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	applyEnvOverrides(&c)
	applyDefaults(&c)

	if err := validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func applyEnvOverrides(c *Config) {
	if dir := os.Getenv("CONCERTS_OUTPUT_DIR"); dir != "" {
		c.Global.Output.Directory = dir
	}
	if v := os.Getenv("CONCERTS_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Global.Performance.MaxConcurrentScrapers = n
		}
	}
}

func applyDefaults(c *Config) {
	if c.Global.Output.Directory == "" {
		c.Global.Output.Directory = "output"
	}
	if len(c.Global.Output.Formats) == 0 {
		c.Global.Output.Formats = []string{"json", "csv", "markdown"}
	}
	if c.Global.Performance.MaxConcurrentScrapers <= 0 {
		c.Global.Performance.MaxConcurrentScrapers = 4
	}
}

func validate(c Config) error {
	enabled := 0
	for id, v := range c.Venues {
		if !v.Enabled {
			continue
		}
		enabled++
		if v.URL == "" {
			return fmt.Errorf("venue %s: url is required", id)
		}
	}
	if enabled == 0 {
		return fmt.Errorf("no venues enabled in configuration")
	}
	return nil
}

// EnabledVenues resolves the enabled venue entries into per-job scraper
// configs, sorted by venue id so runs are deterministic regardless of map
// iteration order.
func (c Config) EnabledVenues() []ScraperConfig {
	out := make([]ScraperConfig, 0, len(c.Venues))
	for id, v := range c.Venues {
		if !v.Enabled {
			continue
		}
		name := v.Name
		if name == "" {
			name = id
		}
		parser := v.Parser
		if parser == "" {
			parser = id
		}
		rate := v.RateLimit
		if rate <= 0 {
			rate = 1
		}
		out = append(out, ScraperConfig{
			VenueID:   id,
			VenueName: name,
			URL:       v.URL,
			RateLimit: rate,
			Parser:    parser,
			Extra:     v.Extra,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VenueID < out[j].VenueID })
	return out
}
