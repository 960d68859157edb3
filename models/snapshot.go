package models

import (
	"fmt"
	"time"
)

// SnapshotVersion is the envelope version written on export. The importer
// records but does not reject other versions; the field exists for forward
// compatibility.
const SnapshotVersion = 1

// Snapshot is a versioned, complete point-in-time export of all five tables.
// It is never persisted inside the database; it exists only as file bytes
// until re-imported.
//
// Row ordering inside each array is insertion order (ascending id), and ids
// are carried verbatim so that goal→student and log→goal references survive a
// restore without remapping.
type Snapshot struct {
	Version     int          `json:"version" validate:"min=1"`
	ExportedAt  time.Time    `json:"exported_at"`
	Students    []Student    `json:"students" validate:"dive"`
	Goals       []Goal       `json:"goals" validate:"dive"`
	Logs        []LogEntry   `json:"logs" validate:"dive"`
	Settings    []Settings   `json:"settings"`
	CustomGoals []CustomGoal `json:"custom_goals" validate:"dive"`
}

// SuggestedFilename returns the default export filename for a snapshot taken
// at t, e.g. "progress-backup-2026-08-31.json".
func SuggestedFilename(t time.Time) string {
	return fmt.Sprintf("progress-backup-%s.json", t.Format("2006-01-02"))
}
