package models

import "time"

// SettingsID is the fixed primary key of the settings singleton row. The
// settings table holds exactly one row at all times; the schema layer repairs
// the row on startup if it is missing.
const SettingsID int64 = 1

// Settings is the application-wide profile record. It is created once when the
// schema is established and only ever updated, never deleted, except by a full
// snapshot restore (which must immediately reinsert or synthesize it).
type Settings struct {
	ID           int64      `json:"-"`
	TeacherName  string     `json:"teacher_name"`
	SchoolName   string     `json:"school_name"`
	PrivacyPin   *string    `json:"privacy_pin"`
	Theme        string     `json:"theme"`
	LastBackupAt *time.Time `json:"last_backup_at"`
}

// HasProfile reports whether the user has completed initial onboarding.
// The staleness monitor suppresses backup reminders until a profile exists.
func (s Settings) HasProfile() bool {
	return s.TeacherName != "" || s.SchoolName != ""
}

// DefaultSettings returns the row inserted when no settings record exists,
// either at first startup or when a restored snapshot carries no settings.
func DefaultSettings() Settings {
	return Settings{
		ID:    SettingsID,
		Theme: "light",
	}
}
