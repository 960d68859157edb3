package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSettingsNotFound is returned when the settings singleton row is
	// absent. This indicates a schema-integrity violation: the row is created
	// at migration time and repaired on every startup.
	ErrSettingsNotFound = errors.New("settings record not found")

	// ErrStudentNotFound is returned when a query or update targets a student
	// id that does not exist in the database.
	ErrStudentNotFound = errors.New("student was not found")

	// ErrGoalNotFound is returned when a query or update targets a goal id
	// that does not exist in the database.
	ErrGoalNotFound = errors.New("goal was not found")

	// ErrLogNotFound is returned when a query or update targets a log id that
	// does not exist in the database.
	ErrLogNotFound = errors.New("log entry was not found")

	// ErrCustomGoalNotFound is returned when a query or update targets a
	// custom goal template id that does not exist in the database.
	ErrCustomGoalNotFound = errors.New("custom goal was not found")

	// ErrUnknownTable is returned when sequence reconciliation is requested
	// for a table outside the fixed whitelist.
	ErrUnknownTable = errors.New("unknown table for sequence reconciliation")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
