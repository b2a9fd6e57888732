package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-league-service/internal/archive"
	"github.com/preston-bernstein/nba-league-service/internal/config"
	"github.com/preston-bernstein/nba-league-service/internal/fixture"
	"github.com/preston-bernstein/nba-league-service/internal/league"
	"github.com/preston-bernstein/nba-league-service/internal/logging"
	"github.com/preston-bernstein/nba-league-service/internal/metrics"
	"github.com/preston-bernstein/nba-league-service/internal/snapshots"
)

// Seams for tests.
var (
	openArchive = func(ctx context.Context, cfg config.SnapshotConfig, leagueName string, logger *slog.Logger) (snapshots.Store, func() error, error) {
		db, err := archive.Open(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		store := archive.New(db, leagueName)
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("migrate archive: %w", err)
		}
		return store, store.Close, nil
	}
	sampleLeague = fixture.NewLeague
)

// buildStore picks the snapshot backend. A nil store means persistence is off.
func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (snapshots.Store, func() error, error) {
	switch cfg.Snapshots.Backend {
	case config.BackendNone:
		return nil, nil, nil
	case config.BackendPostgres:
		return openArchive(ctx, cfg.Snapshots, cfg.LeagueName, logger)
	case config.BackendFS, "":
		return snapshots.NewFSStore(cfg.Snapshots.Dir, cfg.LeagueName, cfg.Snapshots.RetentionDays), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshots.Backend)
	}
}

// loadLeague restores the latest snapshot, then falls back to the sample league
// when seeding is on, then to an empty league.
func loadLeague(ctx context.Context, cfg config.Config, store snapshots.Store, logger *slog.Logger, recorder *metrics.Recorder) (*league.League, error) {
	if store != nil {
		doc, err := store.Load(ctx)
		switch {
		case err == nil:
			l, err := league.FromDocument(doc, logger, recorder)
			if err != nil {
				return nil, fmt.Errorf("restore %s snapshot: %w", store.Name(), err)
			}
			logging.Info(logger, "league restored from snapshot",
				logging.FieldBackend, store.Name(),
				"teams", len(doc.Teams),
				"players", len(doc.Players),
				"matches", len(doc.Matches),
			)
			return l, nil
		case errors.Is(err, snapshots.ErrNoSnapshot):
			logging.Info(logger, "no snapshot found", logging.FieldBackend, store.Name())
		default:
			return nil, fmt.Errorf("load %s snapshot: %w", store.Name(), err)
		}
	}

	if cfg.SeedSample {
		l, err := sampleLeague(logger, recorder)
		if err != nil {
			return nil, fmt.Errorf("seed sample league: %w", err)
		}
		logging.Info(logger, "sample league loaded")
		return l, nil
	}
	return league.New(logger, recorder), nil
}
