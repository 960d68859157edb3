package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/models"
)

func newTestSettingsRepo(t *testing.T) (*settingsRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &settingsRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestEnsureExists_InsertsDefaults(t *testing.T) {
	repo, mock, db := newTestSettingsRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT OR IGNORE INTO settings").
		WithArgs(models.SettingsID, "", "", nil, "light").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.EnsureExists(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetSettings_Success(t *testing.T) {
	repo, mock, db := newTestSettingsRepo(t)
	defer db.Close()

	backedUp := time.Now()
	rows := sqlmock.
		NewRows([]string{"id", "teacher_name", "school_name", "privacy_pin", "theme", "last_backup_at"}).
		AddRow(1, "Ms. Rivera", "Lincoln", nil, "dark", backedUp)

	mock.ExpectQuery("SELECT(.|\n)+FROM settings").
		WithArgs(models.SettingsID).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TeacherName != "Ms. Rivera" {
		t.Errorf("expected teacher name Ms. Rivera, got %s", got.TeacherName)
	}
	if got.LastBackupAt == nil || !got.LastBackupAt.Equal(backedUp) {
		t.Errorf("expected last_backup_at %v, got %v", backedUp, got.LastBackupAt)
	}
}

func TestGetSettings_MissingRow(t *testing.T) {
	repo, mock, db := newTestSettingsRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT(.|\n)+FROM settings").
		WithArgs(models.SettingsID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	if !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}
}

func TestUpdateSettings_MissingRow(t *testing.T) {
	repo, mock, db := newTestSettingsRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE settings").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), models.SettingsID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), models.Settings{TeacherName: "x"})
	if !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}
}

func TestUpdateSettings_DBError(t *testing.T) {
	repo, mock, db := newTestSettingsRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE settings").
		WillReturnError(errors.New("disk I/O error"))

	err := repo.Update(context.Background(), models.Settings{})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}
