package service

import "errors"

var (
	// ErrCancelled marks a user-dismissed interactive prompt. It is a
	// distinct outcome, not a failure; callers are expected to swallow it
	// silently.
	ErrCancelled = errors.New("operation cancelled by user")

	// ErrPermission marks external file access denied by the user or the
	// platform. Unlike ErrCancelled, this is a real failure.
	ErrPermission = errors.New("permission denied for external file")

	ErrUnsupportedPlatform = errors.New("external sync is not supported on this platform")
	ErrNoBackupHandle      = errors.New("no backup handle is connected")

	ErrInvalidSnapshotDocument = errors.New("invalid snapshot document")
	ErrWritingBackupFile       = errors.New("failed to write backup file")
	ErrReadingHandleStore      = errors.New("failed to read backup handle store")
	ErrWritingHandleStore      = errors.New("failed to write backup handle store")
)
