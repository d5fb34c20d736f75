package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/copenmusic/concert-scraper/internal/concert"
	"github.com/copenmusic/concert-scraper/internal/scrape"
)

const snapshotFile = "snapshot.json"

// Storage handles persistence of dataset snapshots between runs.
type Storage struct {
	dataDir string
}

// New creates a new Storage instance rooted at dataDir.
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

// LoadDataset loads the previous run's dataset from disk. A missing
// snapshot is not an error; it returns nil for the first run.
func (s *Storage) LoadDataset() (*scrape.UnifiedDataset, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, snapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var ds scrape.UnifiedDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	return &ds, nil
}

// SaveDataset persists the dataset as the snapshot for the next run.
func (s *Storage) SaveDataset(ds scrape.UnifiedDataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dataDir, snapshotFile), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// NewConcerts returns the concerts in current that were not present in
// previous, compared by id. With no previous dataset everything is new.
func NewConcerts(previous *scrape.UnifiedDataset, current scrape.UnifiedDataset) []concert.Concert {
	seen := make(map[string]bool)
	if previous != nil {
		for _, c := range previous.AllConcerts {
			seen[c.ID] = true
		}
	}

	fresh := make([]concert.Concert, 0)
	for _, c := range current.AllConcerts {
		if !seen[c.ID] {
			fresh = append(fresh, c)
		}
	}
	return fresh
}
