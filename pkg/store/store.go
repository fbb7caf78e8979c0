// Package store persists scan reports as timestamped JSON snapshots. Each
// scan writes a brand-new file; nothing ever rewrites a previous report.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/user/secureflow/pkg/engine"
)

const DefaultDir = "data/scans"

const reportPrefix = "report_"

// Store reads and writes report snapshots under a single directory.
type Store struct {
	dir string
}

func New(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes the report as report_<timestamp>_<id>.json and returns the
// path. The timestamp prefix keeps directory listings in scan order.
func (s *Store) Save(r *engine.ScanReport) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("creating scan directory: %w", err)
	}

	name := fmt.Sprintf("%s%s_%s.json", reportPrefix, r.FinishedAt.UTC().Format("20060102_150405"), shortID(r.ID))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// Load reads one report snapshot.
func (s *Store) Load(path string) (*engine.ScanReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r engine.ScanReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}

// Entry summarizes one persisted report for listing without loading every
// finding into the caller.
type Entry struct {
	Path       string    `json:"path"`
	ID         string    `json:"id"`
	Target     string    `json:"target"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Critical   int       `json:"critical"`
	High       int       `json:"high"`
}

// List returns entries for every snapshot, newest first.
func (s *Store) List() ([]Entry, error) {
	files, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasPrefix(f.Name(), reportPrefix) || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, f.Name())
		r, err := s.Load(path)
		if err != nil {
			// A corrupt snapshot should not hide the valid ones.
			continue
		}
		entries = append(entries, Entry{
			Path:       path,
			ID:         r.ID,
			Target:     r.Target,
			FinishedAt: r.FinishedAt,
			Total:      r.Summary.Total,
			Critical:   r.Summary.BySeverity[engine.SevCritical],
			High:       r.Summary.BySeverity[engine.SevHigh],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].FinishedAt.After(entries[j].FinishedAt)
	})
	return entries, nil
}

// LoadLatest returns the most recent snapshot, or an error when none exist.
func (s *Store) LoadLatest() (*engine.ScanReport, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no scan reports found in %s", s.dir)
	}
	return s.Load(entries[0].Path)
}

// LoadByID finds a snapshot by full or short report id.
func (s *Store) LoadByID(id string) (*engine.ScanReport, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id || shortID(e.ID) == id {
			return s.Load(e.Path)
		}
	}
	return nil, fmt.Errorf("no report with id %q", id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
