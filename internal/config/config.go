package config

import "fmt"

// Config holds runtime configuration for the server.
type Config struct {
	Port       string
	LeagueName string
	SeedSample bool
	AdminToken string
	Log        LogConfig
	Metrics    MetricsConfig
	Snapshots  SnapshotConfig
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		LeagueName: envOrDefault(envLeagueName, defaultLeagueName),
		SeedSample: boolEnvOrDefault(envSeedSample, defaultSeedSample),
		AdminToken: envOrDefault(envAdminToken, ""),
		Log: LogConfig{
			Level:  lowerEnvOrDefault(envLogLevel, defaultLogLevel),
			Format: lowerEnvOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics:   loadMetrics(),
		Snapshots: loadSnapshots(),
	}
}

// Addr is the listen address of the league API.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Snapshots.Backend {
	case BackendFS, BackendNone:
	case BackendPostgres:
		if c.Snapshots.DatabaseURL == "" {
			return fmt.Errorf("%s=%s requires %s", envSnapBackend, BackendPostgres, envDatabaseURL)
		}
	default:
		return fmt.Errorf("unknown %s %q (want %s, %s or %s)", envSnapBackend, c.Snapshots.Backend, BackendFS, BackendPostgres, BackendNone)
	}
	if c.Metrics.Enabled && c.Metrics.Port == c.Port {
		return fmt.Errorf("%s and %s must differ, both are %s", envPort, envMetricsPort, c.Port)
	}
	if c.LeagueName == "" {
		return fmt.Errorf("%s must not be empty", envLeagueName)
	}
	return nil
}
