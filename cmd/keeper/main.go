package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/progress-keeper/progress-keeper/internal/config"
	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/internal/service"
	"github.com/progress-keeper/progress-keeper/internal/store"
	"github.com/progress-keeper/progress-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("keeper")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create storages")
	}
	defer storages.Close()

	picker := newPromptPicker(os.Stdin, os.Stdout)
	services := service.NewServices(storages, *cfg, picker, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backupJob := workers.NewBackupJob(services.BackupHandleService, log)
	backupJob.Start(ctx, cfg.Workers.BackupInterval)
	defer backupJob.Stop()

	log.Info().
		Str("version", cfg.App.Version).
		Str("dsn", cfg.Storage.DB.DSN).
		Dur("backup_interval", cfg.Workers.BackupInterval).
		Msg("progress keeper started")

	<-ctx.Done()
	log.Info().Msg("shutting down")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
