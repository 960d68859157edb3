package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/models"
)

// settingsRepository is the SQLite-backed implementation of
// [SettingsRepository]. The settings table holds exactly one row (fixed id);
// the repository never deletes it.
type settingsRepository struct {
	*DB
	logger *logger.Logger
}

// NewSettingsRepository constructs a [SettingsRepository] backed by the
// provided database connection and logger.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	return &settingsRepository{
		DB:     db,
		logger: logger,
	}
}

// EnsureExists inserts the default settings row if no row with the singleton
// id exists. Called on every startup after migrations; a no-op when the row
// is already present.
func (r *settingsRepository) EnsureExists(ctx context.Context) error {
	log := logger.FromContext(ctx)

	defaults := models.DefaultSettings()
	_, err := r.DB.ExecContext(ctx, ensureSettingsRow,
		defaults.ID,
		defaults.TeacherName,
		defaults.SchoolName,
		defaults.PrivacyPin,
		defaults.Theme,
	)
	if err != nil {
		log.Err(err).
			Str("func", "settingsRepository.EnsureExists").
			Msg("failed to ensure settings singleton row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Get returns the settings singleton row. A missing row is reported as
// [ErrSettingsNotFound]; it indicates the schema layer did not run.
func (r *settingsRepository) Get(ctx context.Context) (models.Settings, error) {
	log := logger.FromContext(ctx)

	var s models.Settings
	err := r.DB.QueryRowContext(ctx, getSettings, models.SettingsID).Scan(
		&s.ID,
		&s.TeacherName,
		&s.SchoolName,
		&s.PrivacyPin,
		&s.Theme,
		&s.LastBackupAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().
			Str("func", "settingsRepository.Get").
			Msg("settings singleton row is missing")
		return models.Settings{}, ErrSettingsNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "settingsRepository.Get").
			Msg("failed to query settings")
		return models.Settings{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return s, nil
}

// Update overwrites the mutable fields of the settings row.
func (r *settingsRepository) Update(ctx context.Context, settings models.Settings) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, updateSettings,
		settings.TeacherName,
		settings.SchoolName,
		settings.PrivacyPin,
		settings.Theme,
		settings.LastBackupAt,
		models.SettingsID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "settingsRepository.Update").
			Msg("failed to update settings")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "settingsRepository.Update").
			Msg("failed to get rows affected after settings update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
