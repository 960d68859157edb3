package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/internal/service"
)

// BackupJob periodically rewrites the external backup file with the current
// snapshot while a handle is connected.
type BackupJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

type backupJob struct {
	handles service.BackupHandleService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewBackupJob creates a backupJob that calls the handle manager's Write on a
// ticker. The job is idle until Start is called.
func NewBackupJob(handles service.BackupHandleService, logger *logger.Logger) BackupJob {
	return &backupJob{handles: handles, logger: logger}
}

// Start stops any previously running job, then launches a background
// goroutine that writes a backup every interval. If interval is zero or
// negative it defaults to 5 minutes. The goroutine exits when ctx is
// cancelled or Stop is called.
//
// Ticks while no handle is connected are skipped silently; the job never
// opens an interactive prompt from background code.
func (j *backupJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case now := <-t.C:
				j.writeOnce(jobCtx, now)
			}
		}
	}()
}

func (j *backupJob) writeOnce(ctx context.Context, now time.Time) {
	if _, ok := j.handles.Connected(ctx); !ok {
		return
	}

	if err := j.handles.Write(ctx, now); err != nil && !errors.Is(err, service.ErrCancelled) {
		j.logger.Warn().
			Err(err).
			Str("func", "backupJob.writeOnce").
			Msg("periodic backup write failed")
	}
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running
// (no-op in that case).
func (j *backupJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
