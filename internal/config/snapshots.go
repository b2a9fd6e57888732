package config

import "time"

// Snapshot backends.
const (
	BackendFS       = "fs"
	BackendPostgres = "postgres"
	BackendNone     = "none"
)

// SnapshotConfig controls where the league is persisted and how often.
type SnapshotConfig struct {
	Backend       string
	Dir           string        // base path for fs snapshots
	Interval      time.Duration // autosave cadence
	RetentionDays int           // days of fs snapshots kept
	DatabaseURL   string        // postgres DSN
}

// Enabled reports whether any backend is configured.
func (s SnapshotConfig) Enabled() bool {
	return s.Backend != BackendNone
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Backend:       lowerEnvOrDefault(envSnapBackend, defaultSnapBackend),
		Dir:           envOrDefault(envSnapDir, defaultSnapDir),
		Interval:      durationEnvOrDefault(envSnapInterval, defaultSnapInterval),
		RetentionDays: intEnvOrDefault(envSnapRetain, defaultSnapRetain),
		DatabaseURL:   envOrDefault(envDatabaseURL, ""),
	}
}
