package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/progress-keeper/progress-keeper/internal/config"
	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/models"
)

type backupHandleService struct {
	storePath string
	picker    FilePicker
	snapshots SnapshotService

	// mu guards the side-store file, not the backup write itself. A Connect
	// prompt can stay pending for an unbounded time and must not block reads
	// of the persisted handle, so the lock is only held around load/persist.
	mu sync.Mutex

	logger *logger.Logger
}

// NewBackupHandleService constructs a [BackupHandleService]. The handle is
// persisted in a small JSON side-store at cfg.HandlePath so it survives
// restarts. A nil picker marks the platform as unsupported; every interactive
// operation then fails fast with [ErrUnsupportedPlatform].
func NewBackupHandleService(cfg config.Backup, picker FilePicker, snapshots SnapshotService, logger *logger.Logger) BackupHandleService {
	return &backupHandleService{
		storePath: cfg.HandlePath,
		picker:    picker,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (s *backupHandleService) IsSupported() bool {
	return s.picker != nil
}

func (s *backupHandleService) Connected(ctx context.Context) (models.BackupHandle, bool) {
	log := logger.FromContext(ctx)

	handle, err := s.loadHandle()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().
				Err(err).
				Str("func", "backupHandleService.Connected").
				Msg("failed to read handle side-store")
		}
		return models.BackupHandle{}, false
	}

	return handle, true
}

func (s *backupHandleService) Connect(ctx context.Context, now time.Time) (models.BackupHandle, error) {
	log := logger.FromContext(ctx)

	if !s.IsSupported() {
		return models.BackupHandle{}, ErrUnsupportedPlatform
	}

	path, err := s.picker.PickFile(ctx, models.SuggestedFilename(now))
	if errors.Is(err, ErrCancelled) {
		// a dismissed prompt is a silent outcome; nothing is persisted
		log.Debug().
			Str("func", "backupHandleService.Connect").
			Msg("file picker dismissed")
		return models.BackupHandle{}, ErrCancelled
	}
	if err != nil {
		log.Err(err).
			Str("func", "backupHandleService.Connect").
			Msg("file picker failed")
		return models.BackupHandle{}, fmt.Errorf("pick backup file: %w", err)
	}

	handle := models.BackupHandle{
		ID:        uuid.NewString(),
		Path:      path,
		CreatedAt: now,
	}

	// one immediate verification write proves the location is writable;
	// the handle is persisted only once that write has succeeded
	if err := s.writeSnapshot(ctx, handle, now); err != nil {
		return models.BackupHandle{}, err
	}

	if err := s.persistHandle(handle); err != nil {
		log.Err(err).
			Str("func", "backupHandleService.Connect").
			Msg("failed to persist handle")
		return models.BackupHandle{}, err
	}

	log.Info().
		Str("func", "backupHandleService.Connect").
		Str("handle_id", handle.ID).
		Str("path", handle.Path).
		Msg("external backup location connected")

	return handle, nil
}

func (s *backupHandleService) Write(ctx context.Context, now time.Time) error {
	log := logger.FromContext(ctx)

	handle, ok := s.Connected(ctx)
	if !ok {
		// no persisted handle: fall back to a fresh interactive connect,
		// which performs the write itself
		_, err := s.Connect(ctx, now)
		return err
	}

	if err := s.writeSnapshot(ctx, handle, now); err != nil {
		log.Err(err).
			Str("func", "backupHandleService.Write").
			Str("handle_id", handle.ID).
			Msg("backup write failed")
		return err
	}

	return nil
}

func (s *backupHandleService) Disconnect(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.storePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Err(err).
			Str("func", "backupHandleService.Disconnect").
			Msg("failed to remove handle side-store")
		return fmt.Errorf("%w: %w", ErrWritingHandleStore, err)
	}

	log.Info().
		Str("func", "backupHandleService.Disconnect").
		Msg("external backup location disconnected")

	return nil
}

// writeSnapshot serializes the current store and overwrites the external file
// wholesale in a single create-write-close cycle. No atomic rename is used;
// an interruption mid-write can leave a truncated file and that residual risk
// is accepted rather than masked by a different write path.
func (s *backupHandleService) writeSnapshot(ctx context.Context, handle models.BackupHandle, now time.Time) error {
	doc, _, err := s.snapshots.ExportJSON(ctx, now)
	if err != nil {
		return err
	}

	if err := os.WriteFile(handle.Path, doc, 0o600); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %w", ErrPermission, err)
		}
		return fmt.Errorf("%w: %w", ErrWritingBackupFile, err)
	}

	return nil
}

func (s *backupHandleService) loadHandle() (models.BackupHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.storePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.BackupHandle{}, err
		}
		return models.BackupHandle{}, fmt.Errorf("%w: %w", ErrReadingHandleStore, err)
	}

	var handle models.BackupHandle
	if err := json.Unmarshal(data, &handle); err != nil {
		return models.BackupHandle{}, fmt.Errorf("%w: %w", ErrReadingHandleStore, err)
	}

	return handle, nil
}

func (s *backupHandleService) persistHandle(handle models.BackupHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(handle, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWritingHandleStore, err)
	}

	if err := os.WriteFile(s.storePath, data, 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingHandleStore, err)
	}

	return nil
}
