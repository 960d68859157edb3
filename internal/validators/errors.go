package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrInvalidSnapshotVersion = errors.New("snapshot version must be a positive integer")
	ErrMissingStudentsArray   = errors.New("snapshot is missing the students array")
	ErrMissingGoalsArray      = errors.New("snapshot is missing the goals array")
	ErrMissingLogsArray       = errors.New("snapshot is missing the logs array")
	ErrMissingTemplatesArray  = errors.New("snapshot is missing the custom_goals array")
	ErrInvalidSnapshotRow     = errors.New("snapshot contains an invalid row")
)
