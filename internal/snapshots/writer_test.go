package snapshots

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriterWritesSnapshotAndManifest(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	w := writerAt(t, dir, 10, now)

	date := writeSnapshot(t, w, sampleDocument(t))
	if date != "2024-03-02" {
		t.Fatalf("expected dated snapshot, got %s", date)
	}

	data, err := os.ReadFile(filepath.Join(dir, "nba", "2024-03-02.json"))
	if err != nil {
		t.Fatalf("expected snapshot file, got err %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected snapshot content")
	}

	m, err := ReadManifest(dir, "NBA")
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	assertDatesEqual(t, m.Snapshots.Dates, []string{"2024-03-02"})
	if m.League != "NBA" || m.Retention.Days != 10 {
		t.Fatalf("unexpected manifest header %+v", m)
	}
	if m.Snapshots.Teams != 6 || m.Snapshots.Players != 12 || m.Snapshots.Matches != 10 {
		t.Fatalf("unexpected manifest counts %+v", m.Snapshots)
	}
	if !m.Snapshots.LastSaved.Equal(now) {
		t.Fatalf("expected last saved %v, got %v", now, m.Snapshots.LastSaved)
	}
}

func TestWriterSlugsLeagueName(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "Summer League 2024!", 5)
	w.now = func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }
	writeSnapshot(t, w, sampleDocument(t))

	if _, err := os.Stat(filepath.Join(dir, "summer-league-2024", "2024-07-01.json")); err != nil {
		t.Fatalf("expected slugged league directory, got %v", err)
	}
}

func TestWriterPrunesOldSnapshots(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument(t)
	today := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	old := writerAt(t, dir, 1, today.AddDate(0, 0, -5))
	writeSnapshot(t, old, doc)
	w := writerAt(t, dir, 1, today)
	writeSnapshot(t, w, doc)

	if _, err := os.Stat(SnapshotPath(dir, "NBA", "2024-03-05")); err == nil {
		t.Fatalf("expected old snapshot to be pruned")
	}
	requireSnapshotExists(t, w, "2024-03-10")

	m, err := ReadManifest(dir, "NBA")
	if err != nil {
		t.Fatalf("expected manifest, got %v", err)
	}
	assertDatesEqual(t, m.Snapshots.Dates, []string{"2024-03-10"})
}

func TestWriterReplacesSameDaySnapshot(t *testing.T) {
	dir := t.TempDir()
	w := writerAt(t, dir, 5, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	doc := sampleDocument(t)
	writeSnapshot(t, w, doc)

	doc.Matches = doc.Matches[:2]
	writeSnapshot(t, w, doc)

	store := &FSStore{writer: w}
	got, err := store.LoadDate("2024-03-10")
	if err != nil {
		t.Fatalf("expected snapshot, got %v", err)
	}
	if len(got.Matches) != 2 {
		t.Fatalf("expected second write to win, got %d matches", len(got.Matches))
	}
}

func TestWriterHandlesNil(t *testing.T) {
	var w *Writer
	if _, err := w.WriteDocument(sampleDocument(t)); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	if w.BasePath() != "" {
		t.Fatalf("expected empty base path for nil writer")
	}
}

func TestNewWriterDefaultsRetention(t *testing.T) {
	w := NewWriter(t.TempDir(), "NBA", 0)
	if w.retentionDays != defaultRetentionDays {
		t.Fatalf("expected default retention, got %d", w.retentionDays)
	}
}

func TestListDatesSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2024-01-02.json", "2024-01-01.json", "manifest.json", "notes.txt", "backup.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	dates, err := listDates(dir)
	if err != nil {
		t.Fatalf("expected dates, got %v", err)
	}
	assertDatesEqual(t, dates, []string{"2024-01-01", "2024-01-02"})

	missing, err := listDates(filepath.Join(dir, "missing"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected empty list for missing dir, got %v (%v)", missing, err)
	}
}
