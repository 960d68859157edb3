package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database DSN (SQLite file path)
//	-c/-config json file path with configs
//	-handle-path path of the external sync handle side-store
//	-export-dir directory for one-shot manual snapshot exports
//	-backup-interval auto-backup interval (e.g., "5m", "1h"; 0 disables)
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var jsonConfigPath string
	var handlePath string
	var exportDir string
	var backupInterval time.Duration

	flag.StringVar(&databaseDSN, "d", "", "Database DSN (SQLite file path)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&handlePath, "handle-path", "", "External sync handle side-store path")
	flag.StringVar(&exportDir, "export-dir", "", "Manual export directory")
	flag.DurationVar(&backupInterval, "backup-interval", 0, "Auto-backup interval (e.g., 5m, 1h)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Backup: Backup{
			HandlePath: handlePath,
			ExportDir:  exportDir,
		},
		Workers: Workers{
			BackupInterval: backupInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
