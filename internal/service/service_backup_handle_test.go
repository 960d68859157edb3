package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progress-keeper/progress-keeper/internal/config"
	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/models"
)

// fakePicker scripts the outcome of the interactive file prompt.
type fakePicker struct {
	path  string
	err   error
	calls int
}

func (p *fakePicker) PickFile(ctx context.Context, suggestedName string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.path, nil
}

// fakeExporter satisfies SnapshotService for handle tests; only ExportJSON is
// exercised by the handle manager.
type fakeExporter struct {
	doc       []byte
	exportErr error
	exports   int
}

func (f *fakeExporter) Export(ctx context.Context, now time.Time) (models.Snapshot, error) {
	return models.Snapshot{}, nil
}

func (f *fakeExporter) ExportJSON(ctx context.Context, now time.Time) ([]byte, string, error) {
	if f.exportErr != nil {
		return nil, "", f.exportErr
	}
	f.exports++
	return f.doc, models.SuggestedFilename(now), nil
}

func (f *fakeExporter) ExportToFile(ctx context.Context, dir string, now time.Time) (string, error) {
	return "", nil
}

func (f *fakeExporter) Import(ctx context.Context, snap models.Snapshot) error { return nil }
func (f *fakeExporter) ImportJSON(ctx context.Context, doc []byte) error       { return nil }
func (f *fakeExporter) Reset(ctx context.Context) error                        { return nil }

func newTestHandleService(t *testing.T, picker FilePicker, exporter SnapshotService) (BackupHandleService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Backup{HandlePath: filepath.Join(dir, "backup-handle.json"), ExportDir: dir}
	return NewBackupHandleService(cfg, picker, exporter, logger.NewLogger("test")), dir
}

func TestIsSupported(t *testing.T) {
	withPicker, _ := newTestHandleService(t, &fakePicker{}, &fakeExporter{})
	assert.True(t, withPicker.IsSupported())

	withoutPicker, _ := newTestHandleService(t, nil, &fakeExporter{})
	assert.False(t, withoutPicker.IsSupported())
}

func TestConnect_PersistsHandleAndWritesVerificationBackup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	dir := t.TempDir()
	target := filepath.Join(dir, "progress-backup.json")
	picker := &fakePicker{path: target}
	exporter := &fakeExporter{doc: []byte(`{"version":1}`)}
	svc, _ := newTestHandleService(t, picker, exporter)

	handle, err := svc.Connect(ctx, now)
	require.NoError(t, err)
	assert.NotEmpty(t, handle.ID)
	assert.Equal(t, target, handle.Path)

	// verification write happened
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1}`, string(written))

	// handle survives into a fresh read
	persisted, ok := svc.Connected(ctx)
	require.True(t, ok)
	assert.Equal(t, handle.ID, persisted.ID)
}

func TestConnect_DismissedPromptIsCancellationNotFailure(t *testing.T) {
	ctx := context.Background()
	picker := &fakePicker{err: ErrCancelled}
	exporter := &fakeExporter{doc: []byte(`{}`)}
	svc, _ := newTestHandleService(t, picker, exporter)

	_, err := svc.Connect(ctx, time.Now())
	assert.ErrorIs(t, err, ErrCancelled)

	// nothing persisted, no backup written
	_, ok := svc.Connected(ctx)
	assert.False(t, ok)
	assert.Zero(t, exporter.exports)
}

func TestConnect_Unsupported(t *testing.T) {
	svc, _ := newTestHandleService(t, nil, &fakeExporter{})

	_, err := svc.Connect(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestWrite_UsesPersistedHandleWithoutPrompting(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	dir := t.TempDir()
	target := filepath.Join(dir, "backup.json")
	picker := &fakePicker{path: target}
	exporter := &fakeExporter{doc: []byte(`{"version":1}`)}
	svc, _ := newTestHandleService(t, picker, exporter)

	_, err := svc.Connect(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, picker.calls)

	require.NoError(t, svc.Write(ctx, now))
	assert.Equal(t, 1, picker.calls, "write with a persisted handle must not prompt again")
	assert.Equal(t, 2, exporter.exports)
}

func TestWrite_FallsBackToConnectWhenNoHandle(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	picker := &fakePicker{path: filepath.Join(dir, "backup.json")}
	exporter := &fakeExporter{doc: []byte(`{}`)}
	svc, _ := newTestHandleService(t, picker, exporter)

	require.NoError(t, svc.Write(ctx, time.Now()))
	assert.Equal(t, 1, picker.calls)

	_, ok := svc.Connected(ctx)
	assert.True(t, ok)
}

func TestWrite_DismissedFallbackConnectSurfacesCancellation(t *testing.T) {
	ctx := context.Background()
	picker := &fakePicker{err: ErrCancelled}
	svc, _ := newTestHandleService(t, picker, &fakeExporter{doc: []byte(`{}`)})

	err := svc.Write(ctx, time.Now())
	assert.ErrorIs(t, err, ErrCancelled)
	assert.NotErrorIs(t, err, ErrPermission)
}

func TestDisconnect_RemovesHandleButKeepsBackupFile(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	target := filepath.Join(dir, "backup.json")
	picker := &fakePicker{path: target}
	svc, _ := newTestHandleService(t, picker, &fakeExporter{doc: []byte(`{}`)})

	_, err := svc.Connect(ctx, time.Now())
	require.NoError(t, err)

	require.NoError(t, svc.Disconnect(ctx))

	_, ok := svc.Connected(ctx)
	assert.False(t, ok)

	// the external backup file itself is untouched
	_, err = os.Stat(target)
	assert.NoError(t, err)

	// disconnecting twice is a no-op
	assert.NoError(t, svc.Disconnect(ctx))
}

func TestWrite_UnwritableTargetIsAFailure(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	// target is a directory: the wholesale overwrite must fail loudly
	picker := &fakePicker{path: dir}
	svc, _ := newTestHandleService(t, picker, &fakeExporter{doc: []byte(`{}`)})

	_, err := svc.Connect(ctx, time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCancelled)

	// the failed verification write must not leave a persisted handle behind
	_, ok := svc.Connected(ctx)
	assert.False(t, ok)
}
