package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const manifestFile = "manifest.json"

// Manifest tracks snapshot metadata for one league directory.
type Manifest struct {
	Version     int           `json:"version"`
	GeneratedAt time.Time     `json:"generatedAt"`
	League      string        `json:"league"`
	Retention   Retention     `json:"retention"`
	Snapshots   SnapshotsMeta `json:"snapshots"`
}

type Retention struct {
	Days int `json:"days"`
}

type SnapshotsMeta struct {
	Dates     []string  `json:"dates"`
	LastSaved time.Time `json:"lastSaved"`
	Teams     int       `json:"teams"`
	Players   int       `json:"players"`
	Matches   int       `json:"matches"`
}

func defaultManifest(league string, retentionDays int) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		League:      league,
		Retention: Retention{
			Days: retentionDays,
		},
		Snapshots: SnapshotsMeta{
			Dates: []string{},
		},
	}
}

// ReadManifest loads the manifest of a league directory.
func ReadManifest(basePath, leagueName string) (Manifest, error) {
	return readManifest(filepath.Join(LeagueDir(basePath, leagueName), manifestFile), leagueName, 0)
}

func readManifest(path, league string, retentionDays int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(league, retentionDays), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(league, retentionDays), err
	}
	return m, nil
}

func writeManifest(dir string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := filepath.Join(dir, manifestFile)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
