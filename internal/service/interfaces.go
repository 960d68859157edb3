package service

import (
	"context"
	"time"

	"github.com/progress-keeper/progress-keeper/models"
)

// SnapshotService owns the snapshot document lifecycle: serializing the full
// store to a versioned JSON envelope and atomically restoring from one.
type SnapshotService interface {
	// Export produces a snapshot of the full store, stamping last_backup_at
	// as a side effect of the same logical operation.
	Export(ctx context.Context, now time.Time) (models.Snapshot, error)

	// ExportJSON produces the snapshot as indented JSON bytes together with
	// the suggested file name for a one-shot manual export.
	ExportJSON(ctx context.Context, now time.Time) ([]byte, string, error)

	// Import validates the snapshot and atomically replaces the store's
	// contents with it. The store is unchanged when an error is returned.
	Import(ctx context.Context, snap models.Snapshot) error

	// ExportToFile writes the snapshot document to dir under the suggested
	// dated filename and returns the full path. This is the manual one-shot
	// export used when no external handle can be held.
	ExportToFile(ctx context.Context, dir string, now time.Time) (string, error)

	// ImportJSON decodes, validates and imports a snapshot document.
	ImportJSON(ctx context.Context, doc []byte) error

	// Reset wipes all students (goals and logs cascade) and custom goal
	// templates. Settings survive. Confirmation is the caller's job; this
	// method executes unconditionally.
	Reset(ctx context.Context) error
}

// FilePicker is the interactive prompt used to choose an external backup
// location. Picking happens in direct response to a user action and can stay
// pending for as long as the user likes.
//
// Implementations return [ErrCancelled] when the user dismisses the prompt
// and [ErrPermission] when access to the chosen location is denied.
type FilePicker interface {
	PickFile(ctx context.Context, suggestedName string) (string, error)
}

// BackupHandleService manages the durable reference to a user-chosen external
// backup file and performs whole-file overwrite backups against it.
type BackupHandleService interface {
	// IsSupported reports whether the platform can hold a durable external
	// file handle at all. Callers must branch on this before Connect.
	IsSupported() bool

	// Connected returns the persisted handle, if any.
	Connected(ctx context.Context) (models.BackupHandle, bool)

	// Connect prompts the user to pick a backup location, persists the
	// resulting handle and performs one immediate verification write.
	// A dismissed prompt returns [ErrCancelled] and persists nothing.
	Connect(ctx context.Context, now time.Time) (models.BackupHandle, error)

	// Write overwrites the external file with the current full snapshot. If
	// no handle is connected it falls back to Connect first.
	Write(ctx context.Context, now time.Time) error

	// Disconnect removes the persisted handle. The external file itself is
	// left in place; a later Write requires a fresh Connect.
	Disconnect(ctx context.Context) error
}

// StalenessService classifies backup recency for the reminder surface.
type StalenessService interface {
	Classify(settings models.Settings, now time.Time) models.StalenessStatus
}

// MasteryService scores a goal's logs against its mastery configuration.
type MasteryService interface {
	Evaluate(goal models.Goal, logs []models.LogEntry) models.MasteryEvaluation
}
