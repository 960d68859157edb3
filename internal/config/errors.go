package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidBackupConfigs indicates invalid backup settings
	// (for example, an empty handle side-store path or export directory).
	ErrInvalidBackupConfigs = errors.New("invalid backup configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a negative backup interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
