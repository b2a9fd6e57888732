package snapshots

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/fixture"
	"github.com/preston-bernstein/nba-league-service/internal/league"
)

func sampleDocument(t *testing.T) league.Document {
	t.Helper()
	doc, err := fixture.Document()
	if err != nil {
		t.Fatalf("failed to decode sample league: %v", err)
	}
	return doc
}

func writerAt(t *testing.T, dir string, retention int, now time.Time) *Writer {
	t.Helper()
	w := NewWriter(dir, "NBA", retention)
	w.now = func() time.Time { return now }
	return w
}

func writeSnapshot(t *testing.T, w *Writer, doc league.Document) string {
	t.Helper()
	date, err := w.WriteDocument(doc)
	if err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	return date
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(SnapshotPath(w.BasePath(), "NBA", date)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

type staticSource struct {
	doc league.Document
}

func (s staticSource) Document() league.Document { return s.doc }

type memoryStore struct {
	mu    sync.Mutex
	saves int
	last  league.Document
	err   error
}

func (m *memoryStore) Name() string { return "memory" }

func (m *memoryStore) Save(_ context.Context, doc league.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.last = doc
	return nil
}

func (m *memoryStore) Load(context.Context) (league.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saves == 0 {
		return league.Document{}, ErrNoSnapshot
	}
	return m.last, nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var errStoreDown = errors.New("store down")
