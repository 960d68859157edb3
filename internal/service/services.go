package service

import (
	"github.com/progress-keeper/progress-keeper/internal/config"
	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/internal/store"
	"github.com/progress-keeper/progress-keeper/internal/validators"
)

type Services struct {
	SnapshotService     SnapshotService
	BackupHandleService BackupHandleService
	StalenessService    StalenessService
	MasteryService      MasteryService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, picker FilePicker, logger *logger.Logger) *Services {
	snapshots := NewSnapshotService(storages.Snapshots, validators.NewSnapshotValidator(), logger)

	return &Services{
		SnapshotService:     snapshots,
		BackupHandleService: NewBackupHandleService(cfg.Backup, picker, snapshots, logger),
		StalenessService:    NewStalenessService(),
		MasteryService:      NewMasteryService(),
	}
}
