package config

import "time"

const (
	envPort         = "PORT"
	envLeagueName   = "LEAGUE_NAME"
	envSeedSample   = "SEED_SAMPLE"
	envAdminToken   = "ADMIN_TOKEN"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envSnapBackend  = "SNAPSHOT_BACKEND"
	envSnapDir      = "SNAPSHOT_DIR"
	envSnapInterval = "SNAPSHOT_INTERVAL"
	envSnapRetain   = "SNAPSHOT_RETENTION_DAYS"
	envDatabaseURL  = "DATABASE_URL"

	defaultPort        = "4000"
	defaultLeagueName  = "NBA"
	defaultSeedSample  = true
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultMetricsPort = "9090"
	defaultServiceName = "nba-league-service"
	defaultSnapBackend = BackendFS
	defaultSnapDir     = "data/snapshots"
	// Autosave cadence; a save also happens on shutdown.
	defaultSnapInterval = 5 * Duration(time.Minute)
	defaultSnapRetain   = 14
)
