package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/models"
)

const (
	exportSettingsRows = `
		SELECT id, teacher_name, school_name, privacy_pin, theme, last_backup_at
		FROM settings ORDER BY id;`

	exportStudentRows = `
		SELECT id, name, student_id, grade, class_type, iep_date, active
		FROM students ORDER BY id;`

	exportGoalRows = `
		SELECT id, student_id, subject, description, active,
		       mastery_enabled, mastery_score, mastery_count, frequency
		FROM goals ORDER BY id;`

	exportLogRows = `
		SELECT id, goal_id, log_date, score, prompt_level,
		       manipulatives_used, manipulatives_type, compliance,
		       behavior, time_spent, notes, tester_name
		FROM logs ORDER BY id;`

	exportCustomGoalRows = `
		SELECT id, subject, text FROM custom_goals ORDER BY id;`
)

// snapshotRepository is the SQLite-backed implementation of
// [SnapshotRepository]. It is the only component that touches more than one
// table per operation, and every one of its operations runs inside a single
// transaction on the store's one connection.
type snapshotRepository struct {
	*DB
	logger *logger.Logger
}

// NewSnapshotRepository constructs a [SnapshotRepository] backed by the
// provided database connection and logger.
func NewSnapshotRepository(db *DB, logger *logger.Logger) SnapshotRepository {
	return &snapshotRepository{
		DB:     db,
		logger: logger,
	}
}

// ExportAll reads every row of all five tables and stamps
// settings.last_backup_at = exportedAt inside the same transaction, so the
// settings rows carried by the snapshot already reflect this export.
func (r *snapshotRepository) ExportAll(ctx context.Context, exportedAt time.Time) (models.Snapshot, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.ExportAll").
			Msg("failed to begin export transaction")
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// stamp first so the settings read below observes the new timestamp
	if _, err = tx.ExecContext(ctx, stampLastBackupAt, exportedAt, models.SettingsID); err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.ExportAll").
			Msg("failed to stamp last_backup_at")
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	snap := models.Snapshot{
		Version:    models.SnapshotVersion,
		ExportedAt: exportedAt,
	}

	if snap.Settings, err = readSettingsRows(ctx, tx); err != nil {
		log.Err(err).Str("func", "snapshotRepository.ExportAll").Msg("failed to read settings rows")
		return models.Snapshot{}, err
	}
	if snap.Students, err = readStudentRows(ctx, tx); err != nil {
		log.Err(err).Str("func", "snapshotRepository.ExportAll").Msg("failed to read student rows")
		return models.Snapshot{}, err
	}
	if snap.Goals, err = readGoalRows(ctx, tx); err != nil {
		log.Err(err).Str("func", "snapshotRepository.ExportAll").Msg("failed to read goal rows")
		return models.Snapshot{}, err
	}
	if snap.Logs, err = readLogRows(ctx, tx); err != nil {
		log.Err(err).Str("func", "snapshotRepository.ExportAll").Msg("failed to read log rows")
		return models.Snapshot{}, err
	}
	if snap.CustomGoals, err = readCustomGoalRows(ctx, tx); err != nil {
		log.Err(err).Str("func", "snapshotRepository.ExportAll").Msg("failed to read custom goal rows")
		return models.Snapshot{}, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "snapshotRepository.ExportAll").
			Msg("failed to commit export transaction")
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "snapshotRepository.ExportAll").
		Int("students", len(snap.Students)).
		Int("goals", len(snap.Goals)).
		Int("logs", len(snap.Logs)).
		Int("custom_goals", len(snap.CustomGoals)).
		Msg("exported full snapshot")

	return snap, nil
}

// ImportAll atomically replaces the store's contents with the snapshot's
// rows. The sequence is: delete all rows child-to-parent (logs, goals,
// students, settings, custom goals), reinsert settings (synthesized when the
// snapshot carries none — the singleton must never end the operation absent),
// then students, goals, logs, custom goals parent-to-child with their
// original primary keys, then reconcile every generator. Any failure rolls
// the whole transaction back; callers never observe a half-restored store.
func (r *snapshotRepository) ImportAll(ctx context.Context, snap models.Snapshot) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.ImportAll").
			Msg("failed to begin import transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// delete order is the manual reverse of the reinsert order below; if the
	// entity graph gains new references both must be re-derived together
	for _, table := range []string{"logs", "goals", "students", "settings", "custom_goals"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Err(err).
				Str("func", "snapshotRepository.ImportAll").
				Str("table", table).
				Msg("failed to clear table")
			return fmt.Errorf("%w: clearing %s: %w", ErrExecutingStatement, table, err)
		}
	}

	settings := models.DefaultSettings()
	if len(snap.Settings) > 0 {
		settings = snap.Settings[0]
		settings.ID = models.SettingsID
	}
	if _, err = tx.ExecContext(ctx, importSettingsRow,
		settings.ID,
		settings.TeacherName,
		settings.SchoolName,
		settings.PrivacyPin,
		settings.Theme,
		settings.LastBackupAt,
	); err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.ImportAll").
			Msg("failed to reinsert settings")
		return fmt.Errorf("%w: reinserting settings: %w", ErrExecutingStatement, err)
	}

	for idx, s := range snap.Students {
		if _, err = tx.ExecContext(ctx, importStudentRow,
			s.ID, s.Name, s.StudentID, s.Grade, s.ClassType, s.IEPDate, s.Active,
		); err != nil {
			log.Err(err).
				Str("func", "snapshotRepository.ImportAll").
				Int("index", idx).
				Int64("id", s.ID).
				Msg("failed to reinsert student")
			return fmt.Errorf("%w: reinserting student id=%d: %w", ErrExecutingStatement, s.ID, err)
		}
	}

	for idx, g := range snap.Goals {
		if _, err = tx.ExecContext(ctx, importGoalRow,
			g.ID, g.StudentID, g.Subject, g.Description, g.Active,
			g.MasteryEnabled, g.MasteryScore, g.MasteryCount, g.Frequency,
		); err != nil {
			log.Err(err).
				Str("func", "snapshotRepository.ImportAll").
				Int("index", idx).
				Int64("id", g.ID).
				Msg("failed to reinsert goal")
			return fmt.Errorf("%w: reinserting goal id=%d: %w", ErrExecutingStatement, g.ID, err)
		}
	}

	for idx, l := range snap.Logs {
		if _, err = tx.ExecContext(ctx, importLogRow,
			l.ID, l.GoalID, l.LogDate, l.Score, l.PromptLevel,
			l.ManipulativesUsed, l.ManipulativesType, l.Compliance,
			l.Behavior, l.TimeSpent, l.Notes, l.TesterName,
		); err != nil {
			log.Err(err).
				Str("func", "snapshotRepository.ImportAll").
				Int("index", idx).
				Int64("id", l.ID).
				Msg("failed to reinsert log entry")
			return fmt.Errorf("%w: reinserting log id=%d: %w", ErrExecutingStatement, l.ID, err)
		}
	}

	for idx, c := range snap.CustomGoals {
		if _, err = tx.ExecContext(ctx, importCustomGoalRow, c.ID, c.Subject, c.Text); err != nil {
			log.Err(err).
				Str("func", "snapshotRepository.ImportAll").
				Int("index", idx).
				Int64("id", c.ID).
				Msg("failed to reinsert custom goal")
			return fmt.Errorf("%w: reinserting custom goal id=%d: %w", ErrExecutingStatement, c.ID, err)
		}
	}

	for table := range sequenceTables {
		if err = reconcileSequence(ctx, tx, table); err != nil {
			log.Err(err).
				Str("func", "snapshotRepository.ImportAll").
				Str("table", table).
				Msg("failed to reconcile sequence")
			return err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "snapshotRepository.ImportAll").
			Msg("failed to commit import transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "snapshotRepository.ImportAll").
		Int("students", len(snap.Students)).
		Int("goals", len(snap.Goals)).
		Int("logs", len(snap.Logs)).
		Int("custom_goals", len(snap.CustomGoals)).
		Msg("imported full snapshot")

	return nil
}

// ResetAll performs the factory wipe: every student row is deleted (goals and
// logs go with them via the cascade) along with all custom goal templates.
// Settings are left as they are; this is not a restore and reinserts nothing.
func (r *snapshotRepository) ResetAll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.ResetAll").
			Msg("failed to begin reset transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, "DELETE FROM students"); err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.ResetAll").
			Msg("failed to delete students")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM custom_goals"); err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.ResetAll").
			Msg("failed to delete custom goals")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "snapshotRepository.ResetAll").
			Msg("failed to commit reset transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().Str("func", "snapshotRepository.ResetAll").Msg("store reset to factory state")

	return nil
}

func readSettingsRows(ctx context.Context, tx *sql.Tx) ([]models.Settings, error) {
	rows, err := tx.QueryContext(ctx, exportSettingsRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.Settings, 0, 1)
	for rows.Next() {
		var s models.Settings
		if err := rows.Scan(&s.ID, &s.TeacherName, &s.SchoolName, &s.PrivacyPin, &s.Theme, &s.LastBackupAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func readStudentRows(ctx context.Context, tx *sql.Tx) ([]models.Student, error) {
	rows, err := tx.QueryContext(ctx, exportStudentRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.Student, 0, 16)
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.StudentID, &s.Grade, &s.ClassType, &s.IEPDate, &s.Active); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func readGoalRows(ctx context.Context, tx *sql.Tx) ([]models.Goal, error) {
	rows, err := tx.QueryContext(ctx, exportGoalRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.Goal, 0, 16)
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(
			&g.ID, &g.StudentID, &g.Subject, &g.Description, &g.Active,
			&g.MasteryEnabled, &g.MasteryScore, &g.MasteryCount, &g.Frequency,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func readLogRows(ctx context.Context, tx *sql.Tx) ([]models.LogEntry, error) {
	rows, err := tx.QueryContext(ctx, exportLogRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.LogEntry, 0, 64)
	for rows.Next() {
		var l models.LogEntry
		if err := rows.Scan(
			&l.ID, &l.GoalID, &l.LogDate, &l.Score, &l.PromptLevel,
			&l.ManipulativesUsed, &l.ManipulativesType, &l.Compliance,
			&l.Behavior, &l.TimeSpent, &l.Notes, &l.TesterName,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func readCustomGoalRows(ctx context.Context, tx *sql.Tx) ([]models.CustomGoal, error) {
	rows, err := tx.QueryContext(ctx, exportCustomGoalRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.CustomGoal, 0, 8)
	for rows.Next() {
		var c models.CustomGoal
		if err := rows.Scan(&c.ID, &c.Subject, &c.Text); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}
