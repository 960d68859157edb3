package store

import (
	"context"
	"fmt"
	"time"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/models"
)

// dashboardRepository is the SQLite-backed implementation of
// [DashboardRepository]. Both aggregates are read-only; Summary wraps its
// four reads in one transaction so the counts and the recent-log list are
// taken from a single consistent view of the store.
type dashboardRepository struct {
	*DB
	logger *logger.Logger
}

// NewDashboardRepository constructs a [DashboardRepository] backed by the
// provided database connection and logger.
func NewDashboardRepository(db *DB, logger *logger.Logger) DashboardRepository {
	return &dashboardRepository{
		DB:     db,
		logger: logger,
	}
}

// Summary computes the dashboard aggregate: active student and goal counts,
// the number of logs dated within the trailing 7 days of now, and the
// recentLimit most recently created logs joined with goal subject and
// student name/id.
func (r *dashboardRepository) Summary(ctx context.Context, now time.Time, recentLimit int) (models.DashboardSummary, error) {
	log := logger.FromContext(ctx)

	var summary models.DashboardSummary

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "dashboardRepository.Summary").
			Msg("failed to begin read transaction")
		return summary, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = tx.QueryRowContext(ctx, countActiveStudents).Scan(&summary.ActiveStudents); err != nil {
		log.Err(err).
			Str("func", "dashboardRepository.Summary").
			Msg("failed to count active students")
		return models.DashboardSummary{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.QueryRowContext(ctx, countActiveGoals).Scan(&summary.ActiveGoals); err != nil {
		log.Err(err).
			Str("func", "dashboardRepository.Summary").
			Msg("failed to count active goals")
		return models.DashboardSummary{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	day := now.Format("2006-01-02")
	if err = tx.QueryRowContext(ctx, countRecentLogs, day).Scan(&summary.LogsLast7Days); err != nil {
		log.Err(err).
			Str("func", "dashboardRepository.Summary").
			Msg("failed to count recent logs")
		return models.DashboardSummary{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rows, err := tx.QueryContext(ctx, selectRecentLogs, recentLimit)
	if err != nil {
		log.Err(err).
			Str("func", "dashboardRepository.Summary").
			Int("recent_limit", recentLimit).
			Msg("failed to query recent logs")
		return models.DashboardSummary{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	summary.RecentLogs = make([]models.RecentLog, 0, recentLimit)

	for rows.Next() {
		var rl models.RecentLog
		scanErr := rows.Scan(
			&rl.LogID,
			&rl.LogDate,
			&rl.Score,
			&rl.GoalSubject,
			&rl.StudentID,
			&rl.StudentName,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "dashboardRepository.Summary").
				Msg("failed to scan recent log row")
			return models.DashboardSummary{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		summary.RecentLogs = append(summary.RecentLogs, rl)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "dashboardRepository.Summary").
			Msg("error occurred during rows iteration")
		return models.DashboardSummary{}, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "dashboardRepository.Summary").
			Msg("failed to commit read transaction")
		return models.DashboardSummary{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return summary, nil
}

// OverdueGoals returns, for every active goal of an active student, the days
// elapsed since its most recent log (or since goal creation when it has
// none), top-N by elapsed days descending.
func (r *dashboardRepository) OverdueGoals(ctx context.Context, now time.Time, topN int) ([]models.OverdueGoal, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, selectOverdueGoals, now.Format("2006-01-02"), topN)
	if err != nil {
		log.Err(err).
			Str("func", "dashboardRepository.OverdueGoals").
			Int("top_n", topN).
			Msg("failed to query overdue goals")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	overdue := make([]models.OverdueGoal, 0, topN)

	for rows.Next() {
		var og models.OverdueGoal
		scanErr := rows.Scan(
			&og.GoalID,
			&og.Subject,
			&og.StudentID,
			&og.StudentName,
			&og.DaysElapsed,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "dashboardRepository.OverdueGoals").
				Msg("failed to scan overdue goal row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		overdue = append(overdue, og)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "dashboardRepository.OverdueGoals").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return overdue, nil
}
