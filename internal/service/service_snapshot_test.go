package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/internal/validators"
	"github.com/progress-keeper/progress-keeper/models"
)

// fakeSnapshotRepository records calls instead of touching a database.
type fakeSnapshotRepository struct {
	exported  models.Snapshot
	exportErr error

	imported  *models.Snapshot
	importErr error

	resetCalled bool
}

func (f *fakeSnapshotRepository) ExportAll(ctx context.Context, exportedAt time.Time) (models.Snapshot, error) {
	if f.exportErr != nil {
		return models.Snapshot{}, f.exportErr
	}
	snap := f.exported
	snap.ExportedAt = exportedAt
	return snap, nil
}

func (f *fakeSnapshotRepository) ImportAll(ctx context.Context, snap models.Snapshot) error {
	if f.importErr != nil {
		return f.importErr
	}
	f.imported = &snap
	return nil
}

func (f *fakeSnapshotRepository) ResetAll(ctx context.Context) error {
	f.resetCalled = true
	return nil
}

func newTestSnapshotService(repo *fakeSnapshotRepository) SnapshotService {
	return NewSnapshotService(repo, validators.NewSnapshotValidator(), logger.NewLogger("test"))
}

func populatedSnapshot() models.Snapshot {
	return models.Snapshot{
		Version:     models.SnapshotVersion,
		Students:    []models.Student{{ID: 1, Name: "A. Smith", Active: true}},
		Goals:       []models.Goal{{ID: 1, StudentID: 1, Subject: "Reading", MasteryScore: 80, MasteryCount: 3}},
		Logs:        []models.LogEntry{{ID: 1, GoalID: 1, LogDate: "2026-08-20", Score: "85"}},
		Settings:    []models.Settings{{TeacherName: "Ms. Rivera", Theme: "light"}},
		CustomGoals: []models.CustomGoal{},
	}
}

func TestExportJSON_ProducesDocumentAndFilename(t *testing.T) {
	repo := &fakeSnapshotRepository{exported: populatedSnapshot()}
	svc := newTestSnapshotService(repo)

	now := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	doc, filename, err := svc.ExportJSON(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "progress-backup-2026-08-25.json", filename)

	var decoded models.Snapshot
	require.NoError(t, json.Unmarshal(doc, &decoded))
	assert.Equal(t, models.SnapshotVersion, decoded.Version)
	require.Len(t, decoded.Students, 1)
	assert.Equal(t, "A. Smith", decoded.Students[0].Name)
}

func TestExportToFile_WritesDatedFile(t *testing.T) {
	repo := &fakeSnapshotRepository{exported: populatedSnapshot()}
	svc := newTestSnapshotService(repo)

	dir := t.TempDir()
	now := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	path, err := svc.ExportToFile(context.Background(), dir, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "progress-backup-2026-08-25.json"), path)

	doc, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.Snapshot
	require.NoError(t, json.Unmarshal(doc, &decoded))
	assert.Len(t, decoded.Students, 1)
}

func TestImport_RejectsInvalidDocumentBeforeRepository(t *testing.T) {
	repo := &fakeSnapshotRepository{}
	svc := newTestSnapshotService(repo)

	bad := populatedSnapshot()
	bad.Students = nil

	err := svc.Import(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidSnapshotDocument)
	assert.Nil(t, repo.imported, "invalid snapshot must never reach the repository")
}

func TestImport_UnknownVersionIsPermissive(t *testing.T) {
	repo := &fakeSnapshotRepository{}
	svc := newTestSnapshotService(repo)

	future := populatedSnapshot()
	future.Version = 2

	require.NoError(t, svc.Import(context.Background(), future))
	require.NotNil(t, repo.imported)
	assert.Equal(t, 2, repo.imported.Version)
}

func TestImportJSON_RoundTrip(t *testing.T) {
	repo := &fakeSnapshotRepository{}
	svc := newTestSnapshotService(repo)

	doc, err := json.Marshal(populatedSnapshot())
	require.NoError(t, err)

	require.NoError(t, svc.ImportJSON(context.Background(), doc))
	require.NotNil(t, repo.imported)
	assert.Len(t, repo.imported.Logs, 1)
}

func TestImportJSON_MalformedDocument(t *testing.T) {
	repo := &fakeSnapshotRepository{}
	svc := newTestSnapshotService(repo)

	err := svc.ImportJSON(context.Background(), []byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidSnapshotDocument)
	assert.Nil(t, repo.imported)
}

func TestImport_RepositoryFailurePropagates(t *testing.T) {
	repoErr := errors.New("restore transaction failed")
	repo := &fakeSnapshotRepository{importErr: repoErr}
	svc := newTestSnapshotService(repo)

	err := svc.Import(context.Background(), populatedSnapshot())
	assert.ErrorIs(t, err, repoErr)
}

func TestReset_DelegatesToRepository(t *testing.T) {
	repo := &fakeSnapshotRepository{}
	svc := newTestSnapshotService(repo)

	require.NoError(t, svc.Reset(context.Background()))
	assert.True(t, repo.resetCalled)
}
