// Package archive stores league documents in Postgres through gorm. Each save
// replaces the league's rows inside one transaction.
package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/preston-bernstein/nba-league-service/internal/league"
	"github.com/preston-bernstein/nba-league-service/internal/snapshots"
)

// Store is a Postgres-backed snapshot store for one league.
type Store struct {
	db     *gorm.DB
	league string
}

var _ snapshots.Store = (*Store)(nil)

// Open connects to Postgres. Gorm's own logging goes through logger at warn level.
func Open(dsn string, logger *slog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database url required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return db, nil
}

func newGormLogger(logger *slog.Logger) gormLogger.Interface {
	if logger == nil {
		return gormLogger.Default.LogMode(gormLogger.Silent)
	}
	return gormLogger.New(
		slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// New wraps an open connection.
func New(db *gorm.DB, leagueName string) *Store {
	return &Store{db: db, league: leagueName}
}

func (s *Store) Name() string { return "postgres" }

// Migrate creates or updates the archive tables.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(allModels()...)
}

// Save replaces the league's rows with doc.
func (s *Store) Save(ctx context.Context, doc league.Document) error {
	rows := toRecords(s.league, doc)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.deleteAll(tx); err != nil {
			return err
		}
		if len(rows.teams) > 0 {
			if err := tx.Create(&rows.teams).Error; err != nil {
				return fmt.Errorf("insert teams: %w", err)
			}
		}
		if len(rows.players) > 0 {
			if err := tx.Create(&rows.players).Error; err != nil {
				return fmt.Errorf("insert players: %w", err)
			}
		}
		if len(rows.matches) > 0 {
			if err := tx.Create(&rows.matches).Error; err != nil {
				return fmt.Errorf("insert matches: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) deleteAll(tx *gorm.DB) error {
	playerIDs := tx.Model(&PlayerRecord{}).Select("id").Where("league = ?", s.league)
	if err := tx.Where("player_id IN (?)", playerIDs).Delete(&StatisticRecord{}).Error; err != nil {
		return fmt.Errorf("clear statistics: %w", err)
	}
	for _, model := range []any{&PlayerRecord{}, &TeamRecord{}, &MatchRecord{}} {
		if err := tx.Where("league = ?", s.league).Delete(model).Error; err != nil {
			return fmt.Errorf("clear league rows: %w", err)
		}
	}
	return nil
}

// Load reads the league back in saved order. An empty league yields ErrNoSnapshot.
func (s *Store) Load(ctx context.Context) (league.Document, error) {
	var rows records
	db := s.db.WithContext(ctx)
	if err := db.Where("league = ?", s.league).Order("seq").Find(&rows.teams).Error; err != nil {
		return league.Document{}, fmt.Errorf("load teams: %w", err)
	}
	err := db.Where("league = ?", s.league).
		Preload("Statistics", func(q *gorm.DB) *gorm.DB { return q.Order("seq") }).
		Order("seq").
		Find(&rows.players).Error
	if err != nil {
		return league.Document{}, fmt.Errorf("load players: %w", err)
	}
	if err := db.Where("league = ?", s.league).Order("seq").Find(&rows.matches).Error; err != nil {
		return league.Document{}, fmt.Errorf("load matches: %w", err)
	}
	if len(rows.teams) == 0 && len(rows.players) == 0 && len(rows.matches) == 0 {
		return league.Document{}, snapshots.ErrNoSnapshot
	}
	return toDocument(rows), nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
