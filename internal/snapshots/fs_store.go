package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/nba-league-service/internal/league"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot available")

// Store saves and restores whole league documents.
type Store interface {
	Name() string
	Save(ctx context.Context, doc league.Document) error
	Load(ctx context.Context) (league.Document, error)
}

// FSStore keeps dated JSON snapshots on the local filesystem.
type FSStore struct {
	writer *Writer
}

var _ Store = (*FSStore)(nil)

// NewFSStore constructs an FS-backed snapshot store for one league.
func NewFSStore(basePath, leagueName string, retentionDays int) *FSStore {
	return &FSStore{writer: NewWriter(basePath, leagueName, retentionDays)}
}

func (s *FSStore) Name() string { return "fs" }

// Save writes today's snapshot.
func (s *FSStore) Save(ctx context.Context, doc league.Document) error {
	if s == nil {
		return errors.New("snapshot store not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.writer.WriteDocument(doc)
	return err
}

// Load reads the most recent snapshot.
func (s *FSStore) Load(ctx context.Context) (league.Document, error) {
	if s == nil {
		return league.Document{}, errors.New("snapshot store not configured")
	}
	if err := ctx.Err(); err != nil {
		return league.Document{}, err
	}
	dates, err := listDates(s.writer.Dir())
	if err != nil {
		return league.Document{}, err
	}
	if len(dates) == 0 {
		return league.Document{}, ErrNoSnapshot
	}
	return s.LoadDate(dates[len(dates)-1])
}

// LoadDate reads the snapshot for the given date (YYYY-MM-DD).
// Files are expected at {basePath}/{league-slug}/{date}.json.
func (s *FSStore) LoadDate(date string) (league.Document, error) {
	if s == nil {
		return league.Document{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return league.Document{}, errors.New("snapshot date required")
	}
	var doc league.Document
	path := SnapshotPath(s.writer.basePath, s.writer.league, date)
	if err := decodeFile(path, &doc); err != nil {
		return league.Document{}, fmt.Errorf("load snapshot %s: %w", date, err)
	}
	return doc, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
