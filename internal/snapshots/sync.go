package snapshots

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/preston-bernstein/nba-league-service/internal/league"
	"github.com/preston-bernstein/nba-league-service/internal/logging"
	"github.com/preston-bernstein/nba-league-service/internal/metrics"
)

// Source hands out a point-in-time league document.
type Source interface {
	Document() league.Document
}

// SyncConfig controls autosave behavior.
type SyncConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Syncer saves the league to a Store on a schedule and on demand.
type Syncer struct {
	source  Source
	store   Store
	cfg     SyncConfig
	logger  *slog.Logger
	metrics *metrics.Recorder

	mu           sync.Mutex
	scheduler    gocron.Scheduler
	newScheduler func() (gocron.Scheduler, error)
}

// NewSyncer constructs a snapshot syncer.
func NewSyncer(source Source, store Store, cfg SyncConfig, logger *slog.Logger, recorder *metrics.Recorder) *Syncer {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	return &Syncer{
		source:  source,
		store:   store,
		cfg:     cfg,
		logger:  logger,
		metrics: recorder,
		newScheduler: func() (gocron.Scheduler, error) {
			return gocron.NewScheduler()
		},
	}
}

// Start schedules the autosave job. It is a no-op when disabled or when there is
// nothing to save to.
func (s *Syncer) Start(ctx context.Context) error {
	if s == nil || !s.cfg.Enabled || s.store == nil || s.source == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		return nil
	}

	sched, err := s.newScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(func() {
			_ = s.SaveNow(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return err
	}
	sched.Start()
	s.scheduler = sched

	logging.Info(s.logger, "snapshot autosave scheduled",
		logging.FieldBackend, s.store.Name(),
		"interval", s.cfg.Interval.String(),
	)
	return nil
}

// SaveNow writes the current league document.
func (s *Syncer) SaveNow(ctx context.Context) error {
	if s == nil || s.store == nil || s.source == nil {
		return errors.New("snapshot syncer not configured")
	}
	start := time.Now()
	doc := s.source.Document()
	err := s.store.Save(ctx, doc)
	duration := time.Since(start)
	s.metrics.RecordSnapshot(s.store.Name(), duration, err)
	if err != nil {
		logging.Warn(s.logger, "snapshot save failed",
			logging.FieldBackend, s.store.Name(),
			logging.FieldError, err,
		)
		return err
	}
	logging.Info(s.logger, "snapshot written",
		logging.FieldBackend, s.store.Name(),
		"teams", len(doc.Teams),
		"players", len(doc.Players),
		"matches", len(doc.Matches),
		logging.FieldDurationMS, duration.Milliseconds(),
	)
	return nil
}

// Stop cancels the schedule and writes a final snapshot.
func (s *Syncer) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	sched := s.scheduler
	s.scheduler = nil
	s.mu.Unlock()

	var errs []error
	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.cfg.Enabled && s.store != nil && s.source != nil {
		if err := s.SaveNow(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
