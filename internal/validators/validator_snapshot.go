package validators

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/progress-keeper/progress-keeper/models"
)

// SnapshotValidator checks a snapshot document before it is handed to the
// importer. A snapshot that fails validation must never reach the restore
// transaction; the importer relies on the document being structurally sound.
type SnapshotValidator struct {
	validate *validator.Validate
}

func NewSnapshotValidator() Validator {
	return &SnapshotValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *SnapshotValidator) Validate(ctx context.Context, obj any) error {
	switch value := obj.(type) {
	case models.Snapshot:
		return v.validateSnapshot(ctx, value)
	case *models.Snapshot:
		return v.validateSnapshot(ctx, *value)
	default:
		return ErrUnsupportedType
	}
}

func (v *SnapshotValidator) validateSnapshot(ctx context.Context, snap models.Snapshot) error {
	if snap.Version < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSnapshotVersion, snap.Version)
	}

	// required table arrays must be present, even when empty; a nil slice
	// means the key was absent from the document. The settings array is the
	// one exception: a missing singleton is synthesized on import.
	if snap.Students == nil {
		return ErrMissingStudentsArray
	}
	if snap.Goals == nil {
		return ErrMissingGoalsArray
	}
	if snap.Logs == nil {
		return ErrMissingLogsArray
	}
	if snap.CustomGoals == nil {
		return ErrMissingTemplatesArray
	}

	if err := v.validate.StructCtx(ctx, snap); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshotRow, err)
	}

	return nil
}
