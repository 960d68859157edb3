package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Backup.HandlePath == "" || cfg.Backup.ExportDir == "" {
		return ErrInvalidBackupConfigs
	}

	if cfg.Workers.BackupInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
