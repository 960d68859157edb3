package store

import (
	"context"
	"fmt"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/models"
)

// customGoalRepository is the SQLite-backed implementation of
// [CustomGoalRepository]. Templates are independent of students and goals and
// never participate in cascades.
type customGoalRepository struct {
	*DB
	logger *logger.Logger
}

// NewCustomGoalRepository constructs a [CustomGoalRepository] backed by the
// provided database connection and logger.
func NewCustomGoalRepository(db *DB, logger *logger.Logger) CustomGoalRepository {
	return &customGoalRepository{
		DB:     db,
		logger: logger,
	}
}

// Create inserts a new template and writes the generated id back into goal.ID.
func (r *customGoalRepository) Create(ctx context.Context, goal *models.CustomGoal) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, saveCustomGoal, goal.Subject, goal.Text)
	if err != nil {
		log.Err(err).
			Str("func", "customGoalRepository.Create").
			Str("subject", goal.Subject).
			Msg("failed to insert custom goal")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	goal.ID, err = result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "customGoalRepository.Create").
			Msg("failed to get generated custom goal id")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// List returns all templates in creation order.
func (r *customGoalRepository) List(ctx context.Context) ([]models.CustomGoal, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listCustomGoals)
	if err != nil {
		log.Err(err).
			Str("func", "customGoalRepository.List").
			Msg("failed to execute custom goal list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	goals := make([]models.CustomGoal, 0, 8)

	for rows.Next() {
		var g models.CustomGoal
		if scanErr := rows.Scan(&g.ID, &g.Subject, &g.Text); scanErr != nil {
			log.Err(scanErr).
				Str("func", "customGoalRepository.List").
				Msg("failed to scan custom goal row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		goals = append(goals, g)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "customGoalRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return goals, nil
}

// Update overwrites the template with the given id.
func (r *customGoalRepository) Update(ctx context.Context, goal models.CustomGoal) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, updateCustomGoal, goal.Subject, goal.Text, goal.ID)
	if err != nil {
		log.Err(err).
			Str("func", "customGoalRepository.Update").
			Int64("custom_goal_id", goal.ID).
			Msg("failed to update custom goal")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireRowsAffected(result, ErrCustomGoalNotFound)
}

// Delete removes the template with the given id.
func (r *customGoalRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteCustomGoal, id)
	if err != nil {
		log.Err(err).
			Str("func", "customGoalRepository.Delete").
			Int64("custom_goal_id", id).
			Msg("failed to delete custom goal")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireRowsAffected(result, ErrCustomGoalNotFound)
}
