package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/internal/store"
	"github.com/progress-keeper/progress-keeper/internal/validators"
	"github.com/progress-keeper/progress-keeper/models"
)

type snapshotService struct {
	snapshots store.SnapshotRepository
	validator validators.Validator

	logger *logger.Logger
}

// NewSnapshotService constructs a [SnapshotService] on top of the snapshot
// repository. Incoming documents pass validation before they are allowed to
// touch the restore transaction.
func NewSnapshotService(snapshots store.SnapshotRepository, validator validators.Validator, logger *logger.Logger) SnapshotService {
	return &snapshotService{
		snapshots: snapshots,
		validator: validator,
		logger:    logger,
	}
}

func (s *snapshotService) Export(ctx context.Context, now time.Time) (models.Snapshot, error) {
	return s.snapshots.ExportAll(ctx, now)
}

func (s *snapshotService) ExportJSON(ctx context.Context, now time.Time) ([]byte, string, error) {
	log := logger.FromContext(ctx)

	snap, err := s.snapshots.ExportAll(ctx, now)
	if err != nil {
		return nil, "", fmt.Errorf("export snapshot: %w", err)
	}

	doc, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Err(err).
			Str("func", "snapshotService.ExportJSON").
			Msg("failed to marshal snapshot")
		return nil, "", fmt.Errorf("marshal snapshot: %w", err)
	}

	return doc, models.SuggestedFilename(now), nil
}

func (s *snapshotService) ExportToFile(ctx context.Context, dir string, now time.Time) (string, error) {
	log := logger.FromContext(ctx)

	doc, filename, err := s.ExportJSON(ctx, now)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		log.Err(err).
			Str("func", "snapshotService.ExportToFile").
			Str("path", path).
			Msg("failed to write export file")
		return "", fmt.Errorf("%w: %w", ErrWritingBackupFile, err)
	}

	log.Info().
		Str("func", "snapshotService.ExportToFile").
		Str("path", path).
		Msg("snapshot exported")

	return path, nil
}

func (s *snapshotService) Import(ctx context.Context, snap models.Snapshot) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, snap); err != nil {
		log.Warn().
			Err(err).
			Str("func", "snapshotService.Import").
			Msg("rejected snapshot document")
		return fmt.Errorf("%w: %w", ErrInvalidSnapshotDocument, err)
	}

	if snap.Version != models.SnapshotVersion {
		// recorded for diagnostics; unknown versions are imported permissively
		log.Warn().
			Str("func", "snapshotService.Import").
			Int("version", snap.Version).
			Int("supported", models.SnapshotVersion).
			Msg("importing snapshot with a different envelope version")
	}

	if err := s.snapshots.ImportAll(ctx, snap); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}

	return nil
}

func (s *snapshotService) ImportJSON(ctx context.Context, doc []byte) error {
	log := logger.FromContext(ctx)

	var snap models.Snapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		log.Warn().
			Err(err).
			Str("func", "snapshotService.ImportJSON").
			Msg("failed to decode snapshot document")
		return fmt.Errorf("%w: %w", ErrInvalidSnapshotDocument, err)
	}

	return s.Import(ctx, snap)
}

func (s *snapshotService) Reset(ctx context.Context) error {
	return s.snapshots.ResetAll(ctx)
}
