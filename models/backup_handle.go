package models

import "time"

// BackupHandle is the persisted reference to a user-chosen external file
// location used for continuous auto-backup. It survives restarts in a small
// JSON side-store next to the database.
type BackupHandle struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}
