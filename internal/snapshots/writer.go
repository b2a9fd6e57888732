package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/league"
	"github.com/preston-bernstein/nba-league-service/internal/timeutil"
)

const defaultRetentionDays = 14

// Writer persists one league document per day plus a manifest, pruning old days.
type Writer struct {
	basePath      string
	league        string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath, leagueName string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		league:        leagueName,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// Dir is the league directory the writer fills.
func (w *Writer) Dir() string {
	return LeagueDir(w.basePath, w.league)
}

// WriteDocument writes today's snapshot, replacing an earlier one from the same
// day, and prunes snapshots outside the retention window. It returns the date written.
func (w *Writer) WriteDocument(doc league.Document) (string, error) {
	if w == nil {
		return "", fmt.Errorf("snapshot writer not configured")
	}
	date := timeutil.FormatDate(w.now().UTC())
	if err := w.writeSnapshot(date, doc); err != nil {
		return "", err
	}
	return date, nil
}

func (w *Writer) writeSnapshot(date string, doc league.Document) error {
	if date == "" {
		return fmt.Errorf("date required")
	}
	target := SnapshotPath(w.basePath, w.league, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(date, doc)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	return w.updateManifest(date, doc)
}

func (w *Writer) updateManifest(date string, doc league.Document) error {
	dir := w.Dir()
	m, _ := readManifest(filepath.Join(dir, manifestFile), w.league, w.retentionDays)

	dates, err := listDates(dir)
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	pruned := w.pruneOldSnapshots(dates)

	m.League = w.league
	m.Retention.Days = w.retentionDays
	m.Snapshots = SnapshotsMeta{
		Dates:     pruned,
		LastSaved: w.now().UTC(),
		Teams:     len(doc.Teams),
		Players:   len(doc.Players),
		Matches:   len(doc.Matches),
	}
	return writeManifest(dir, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

// listDates returns the snapshot dates present in dir, oldest first.
func listDates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" || name == manifestFile {
			continue
		}
		base := strings.TrimSuffix(name, ".json")
		if _, err := timeutil.ParseDate(base); err != nil {
			continue
		}
		dates = append(dates, base)
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(dates []string) []string {
	cutoff := timeutil.CalendarDate(w.now().UTC()).AddDate(0, 0, -w.retentionDays)
	keep := []string{}
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(SnapshotPath(w.basePath, w.league, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
