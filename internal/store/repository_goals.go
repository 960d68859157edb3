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

// goalRepository is the SQLite-backed implementation of [GoalRepository].
// A goal belongs to exactly one student; deleting a goal cascades to its logs.
type goalRepository struct {
	*DB
	logger *logger.Logger
}

// NewGoalRepository constructs a [GoalRepository] backed by the provided
// database connection and logger.
func NewGoalRepository(db *DB, logger *logger.Logger) GoalRepository {
	return &goalRepository{
		DB:     db,
		logger: logger,
	}
}

// Create inserts a new goal and writes the generated id back into goal.ID.
// The referenced student must exist; the foreign key rejects dangling ids.
func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, saveGoal,
		goal.StudentID,
		goal.Subject,
		goal.Description,
		goal.Active,
		goal.MasteryEnabled,
		goal.MasteryScore,
		goal.MasteryCount,
		goal.Frequency,
	)
	if err != nil {
		log.Err(err).
			Str("func", "goalRepository.Create").
			Int64("student_id", goal.StudentID).
			Str("subject", goal.Subject).
			Msg("failed to insert goal")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	goal.ID, err = result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "goalRepository.Create").
			Msg("failed to get generated goal id")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Get returns the goal with the given id.
func (r *goalRepository) Get(ctx context.Context, id int64) (models.Goal, error) {
	log := logger.FromContext(ctx)

	var g models.Goal
	err := r.DB.QueryRowContext(ctx, getGoal, id).Scan(
		&g.ID,
		&g.StudentID,
		&g.Subject,
		&g.Description,
		&g.Active,
		&g.MasteryEnabled,
		&g.MasteryScore,
		&g.MasteryCount,
		&g.Frequency,
		&g.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Goal{}, ErrGoalNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "goalRepository.Get").
			Int64("goal_id", id).
			Msg("failed to query goal")
		return models.Goal{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return g, nil
}

// ListByStudent returns the student's goals in creation order. By default
// only active goals are returned; includeInactive widens the result.
func (r *goalRepository) ListByStudent(ctx context.Context, studentID int64, includeInactive bool) ([]models.Goal, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(
		"id", "student_id", "subject", "description", "active",
		"mastery_enabled", "mastery_score", "mastery_count", "frequency", "created_at",
	).
		From("goals").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("id")
	if !includeInactive {
		builder = builder.Where(sq.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "goalRepository.ListByStudent").
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "goalRepository.ListByStudent").
			Int64("student_id", studentID).
			Msg("failed to execute goal list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	goals := make([]models.Goal, 0, 8)

	for rows.Next() {
		var g models.Goal
		scanErr := rows.Scan(
			&g.ID,
			&g.StudentID,
			&g.Subject,
			&g.Description,
			&g.Active,
			&g.MasteryEnabled,
			&g.MasteryScore,
			&g.MasteryCount,
			&g.Frequency,
			&g.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "goalRepository.ListByStudent").
				Msg("failed to scan goal row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		goals = append(goals, g)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "goalRepository.ListByStudent").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return goals, nil
}

// Update overwrites the mutable fields of the goal with the given id. The
// owning student never changes; goals are not moved between students.
func (r *goalRepository) Update(ctx context.Context, goal models.Goal) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, updateGoal,
		goal.Subject,
		goal.Description,
		goal.Active,
		goal.MasteryEnabled,
		goal.MasteryScore,
		goal.MasteryCount,
		goal.Frequency,
		goal.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "goalRepository.Update").
			Int64("goal_id", goal.ID).
			Msg("failed to update goal")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireRowsAffected(result, ErrGoalNotFound)
}

// Delete removes the goal with the given id; its logs are removed by the
// cascade.
func (r *goalRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteGoal, id)
	if err != nil {
		log.Err(err).
			Str("func", "goalRepository.Delete").
			Int64("goal_id", id).
			Msg("failed to delete goal")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireRowsAffected(result, ErrGoalNotFound)
}
