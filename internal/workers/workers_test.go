package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/models"
)

// fakeHandleService counts Write calls and scripts whether a handle exists.
type fakeHandleService struct {
	mu        sync.Mutex
	connected bool
	writes    int
	writeErr  error
}

func (f *fakeHandleService) IsSupported() bool { return true }

func (f *fakeHandleService) Connected(ctx context.Context) (models.BackupHandle, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.BackupHandle{ID: "h"}, f.connected
}

func (f *fakeHandleService) Connect(ctx context.Context, now time.Time) (models.BackupHandle, error) {
	return models.BackupHandle{}, nil
}

func (f *fakeHandleService) Write(ctx context.Context, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	return f.writeErr
}

func (f *fakeHandleService) Disconnect(ctx context.Context) error { return nil }

func (f *fakeHandleService) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func TestBackupJob_WritesOnTicks(t *testing.T) {
	handles := &fakeHandleService{connected: true}
	job := NewBackupJob(handles, logger.NewLogger("test"))

	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	require.Eventually(t, func() bool {
		return handles.writeCount() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestBackupJob_SkipsTicksWithoutHandle(t *testing.T) {
	handles := &fakeHandleService{connected: false}
	job := NewBackupJob(handles, logger.NewLogger("test"))

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	job.Stop()

	assert.Zero(t, handles.writeCount(), "background job must never write without a handle")
}

func TestBackupJob_StopIsIdempotent(t *testing.T) {
	handles := &fakeHandleService{connected: true}
	job := NewBackupJob(handles, logger.NewLogger("test"))

	// stopping an idle job is a no-op
	job.Stop()

	job.Start(context.Background(), time.Hour)
	job.Stop()
	job.Stop()
}

func TestBackupJob_RestartReplacesPreviousJob(t *testing.T) {
	handles := &fakeHandleService{connected: true}
	job := NewBackupJob(handles, logger.NewLogger("test"))

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	require.Eventually(t, func() bool {
		return handles.writeCount() >= 1
	}, time.Second, 5*time.Millisecond)
}
