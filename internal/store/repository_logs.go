package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/models"
)

// logRepository is the SQLite-backed implementation of [LogRepository].
type logRepository struct {
	*DB
	logger *logger.Logger
}

// NewLogRepository constructs a [LogRepository] backed by the provided
// database connection and logger.
func NewLogRepository(db *DB, logger *logger.Logger) LogRepository {
	return &logRepository{
		DB:     db,
		logger: logger,
	}
}

// Create inserts a new log entry and writes the generated id back into
// entry.ID. The referenced goal must exist.
func (r *logRepository) Create(ctx context.Context, entry *models.LogEntry) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, saveLog,
		entry.GoalID,
		entry.LogDate,
		entry.Score,
		entry.PromptLevel,
		entry.ManipulativesUsed,
		entry.ManipulativesType,
		entry.Compliance,
		entry.Behavior,
		entry.TimeSpent,
		entry.Notes,
		entry.TesterName,
	)
	if err != nil {
		log.Err(err).
			Str("func", "logRepository.Create").
			Int64("goal_id", entry.GoalID).
			Str("log_date", entry.LogDate).
			Msg("failed to insert log entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	entry.ID, err = result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "logRepository.Create").
			Msg("failed to get generated log id")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Get returns the log entry with the given id.
func (r *logRepository) Get(ctx context.Context, id int64) (models.LogEntry, error) {
	log := logger.FromContext(ctx)

	var e models.LogEntry
	err := r.DB.QueryRowContext(ctx, getLog, id).Scan(
		&e.ID,
		&e.GoalID,
		&e.LogDate,
		&e.Score,
		&e.PromptLevel,
		&e.ManipulativesUsed,
		&e.ManipulativesType,
		&e.Compliance,
		&e.Behavior,
		&e.TimeSpent,
		&e.Notes,
		&e.TesterName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LogEntry{}, ErrLogNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "logRepository.Get").
			Int64("log_id", id).
			Msg("failed to query log entry")
		return models.LogEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return e, nil
}

// ListByGoal returns the goal's log entries most recent first. A limit of
// zero returns all entries.
func (r *logRepository) ListByGoal(ctx context.Context, goalID int64, limit int) ([]models.LogEntry, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(
		"id", "goal_id", "log_date", "score", "prompt_level",
		"manipulatives_used", "manipulatives_type", "compliance",
		"behavior", "time_spent", "notes", "tester_name",
	).
		From("logs").
		Where(sq.Eq{"goal_id": goalID}).
		OrderBy("log_date DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "logRepository.ListByGoal").
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "logRepository.ListByGoal").
			Int64("goal_id", goalID).
			Msg("failed to execute log list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.LogEntry, 0, 16)

	for rows.Next() {
		var e models.LogEntry
		scanErr := rows.Scan(
			&e.ID,
			&e.GoalID,
			&e.LogDate,
			&e.Score,
			&e.PromptLevel,
			&e.ManipulativesUsed,
			&e.ManipulativesType,
			&e.Compliance,
			&e.Behavior,
			&e.TimeSpent,
			&e.Notes,
			&e.TesterName,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "logRepository.ListByGoal").
				Msg("failed to scan log row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, e)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "logRepository.ListByGoal").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// Update overwrites the mutable fields of the log entry with the given id.
func (r *logRepository) Update(ctx context.Context, entry models.LogEntry) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, updateLog,
		entry.LogDate,
		entry.Score,
		entry.PromptLevel,
		entry.ManipulativesUsed,
		entry.ManipulativesType,
		entry.Compliance,
		entry.Behavior,
		entry.TimeSpent,
		entry.Notes,
		entry.TesterName,
		entry.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "logRepository.Update").
			Int64("log_id", entry.ID).
			Msg("failed to update log entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireRowsAffected(result, ErrLogNotFound)
}

// Delete removes the log entry with the given id.
func (r *logRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteLog, id)
	if err != nil {
		log.Err(err).
			Str("func", "logRepository.Delete").
			Int64("log_id", id).
			Msg("failed to delete log entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireRowsAffected(result, ErrLogNotFound)
}
