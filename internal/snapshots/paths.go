package snapshots

import (
	"fmt"
	"path/filepath"

	"github.com/gosimple/slug"
)

// LeagueDir is the directory holding one league's snapshots. The league name is
// slugged so any display name maps to a safe directory.
func LeagueDir(basePath, leagueName string) string {
	name := slug.Make(leagueName)
	if name == "" {
		name = "league"
	}
	return filepath.Join(basePath, name)
}

// SnapshotPath builds the path to a league snapshot for a given date.
func SnapshotPath(basePath, leagueName, date string) string {
	return filepath.Join(LeagueDir(basePath, leagueName), fmt.Sprintf("%s.json", date))
}
