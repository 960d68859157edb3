package store

import (
	"context"
	"time"

	"github.com/progress-keeper/progress-keeper/models"
)

// SettingsRepository manages the settings singleton row. The row is never
// deleted; EnsureExists repairs it if it is missing.
type SettingsRepository interface {
	EnsureExists(ctx context.Context) error
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, settings models.Settings) error
}

// StudentRepository provides typed CRUD over the students table. Delete
// cascades to the student's goals and their logs.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	Get(ctx context.Context, id int64) (models.Student, error)
	List(ctx context.Context, includeInactive bool) ([]models.Student, error)
	Update(ctx context.Context, student models.Student) error
	Delete(ctx context.Context, id int64) error
}

// GoalRepository provides typed CRUD over the goals table. Delete cascades to
// the goal's logs.
type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	Get(ctx context.Context, id int64) (models.Goal, error)
	ListByStudent(ctx context.Context, studentID int64, includeInactive bool) ([]models.Goal, error)
	Update(ctx context.Context, goal models.Goal) error
	Delete(ctx context.Context, id int64) error
}

// LogRepository provides typed CRUD over the logs table.
type LogRepository interface {
	Create(ctx context.Context, entry *models.LogEntry) error
	Get(ctx context.Context, id int64) (models.LogEntry, error)
	// ListByGoal returns the goal's logs most recent first. A limit of zero
	// means no limit.
	ListByGoal(ctx context.Context, goalID int64, limit int) ([]models.LogEntry, error)
	Update(ctx context.Context, entry models.LogEntry) error
	Delete(ctx context.Context, id int64) error
}

// CustomGoalRepository provides typed CRUD over the custom goal templates.
type CustomGoalRepository interface {
	Create(ctx context.Context, goal *models.CustomGoal) error
	List(ctx context.Context) ([]models.CustomGoal, error)
	Update(ctx context.Context, goal models.CustomGoal) error
	Delete(ctx context.Context, id int64) error
}

// DashboardRepository exposes the two read-only aggregates consumed by the
// home screen. Both are side-effect-free and each executes as a single
// consistent read.
type DashboardRepository interface {
	Summary(ctx context.Context, now time.Time, recentLimit int) (models.DashboardSummary, error)
	OverdueGoals(ctx context.Context, now time.Time, topN int) ([]models.OverdueGoal, error)
}

// SnapshotRepository serializes the entire store to a snapshot and replaces
// the entire store's contents from one, each inside a single transaction.
type SnapshotRepository interface {
	// ExportAll reads all rows of all five tables and stamps
	// settings.last_backup_at = exportedAt in the same transaction, so the
	// stamped settings row is never stale relative to the produced snapshot.
	ExportAll(ctx context.Context, exportedAt time.Time) (models.Snapshot, error)

	// ImportAll atomically replaces the store's contents with the snapshot's
	// rows, preserving original primary keys and re-synchronizing every
	// table's key generator. Any failure rolls the whole operation back.
	ImportAll(ctx context.Context, snap models.Snapshot) error

	// ResetAll deletes all students (goals and logs cascade) and custom
	// goals. Settings are not touched. This is a factory wipe, not a restore.
	ResetAll(ctx context.Context) error
}
