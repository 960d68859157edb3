package store

import (
	"context"
	"fmt"

	"github.com/progress-keeper/progress-keeper/internal/config"
	"github.com/progress-keeper/progress-keeper/internal/logger"
)

// Storages groups every repository of the persistence layer into a single
// value that can be passed around the service layer.
type Storages struct {
	Settings    SettingsRepository
	Students    StudentRepository
	Goals       GoalRepository
	Logs        LogRepository
	CustomGoals CustomGoalRepository
	Dashboard   DashboardRepository
	Snapshots   SnapshotRepository

	db *DB
}

// NewStorages initialises the storage layer using the supplied configuration
// and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Repairs the settings singleton row if it is missing.
//  4. Constructs and returns a [Storages] value with every repository wired
//     to the shared connection.
//
// Returns an error if the database connection cannot be established, if
// migration fails, or if the settings row cannot be ensured.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	settings := NewSettingsRepository(db, logger)
	if err := settings.EnsureExists(context.Background()); err != nil {
		return nil, fmt.Errorf("settings row repair failed: %w", err)
	}

	return &Storages{
		Settings:    settings,
		Students:    NewStudentRepository(db, logger),
		Goals:       NewGoalRepository(db, logger),
		Logs:        NewLogRepository(db, logger),
		CustomGoals: NewCustomGoalRepository(db, logger),
		Dashboard:   NewDashboardRepository(db, logger),
		Snapshots:   NewSnapshotRepository(db, logger),
		db:          db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
