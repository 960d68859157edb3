package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// progress-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the on-device database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Backup holds settings for the external-file auto-sync facility and
	// manual snapshot exports.
	Backup Backup `envPrefix:"BACKUP_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the on-device SQLite database.
type DB struct {
	// DSN is the SQLite connection string, typically a file path
	// (e.g. "progress-keeper.db" or ":memory:" for tests).
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Backup holds settings for snapshot exports and the external sync handle.
type Backup struct {
	// HandlePath is the path of the JSON side-store that persists the
	// external sync handle across restarts.
	// Env: BACKUP_HANDLE_PATH
	HandlePath string `env:"HANDLE_PATH"`

	// ExportDir is the directory used for one-shot manual snapshot exports
	// when no external handle is connected.
	// Env: BACKUP_EXPORT_DIR
	ExportDir string `env:"EXPORT_DIR"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// BackupInterval defines how often the auto-backup job writes the current
	// snapshot to the connected external file. Zero disables the job.
	// Env: WORKERS_BACKUP_INTERVAL
	BackupInterval time.Duration `env:"BACKUP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
