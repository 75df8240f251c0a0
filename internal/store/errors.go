package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEventNotFound is returned when a queue operation targets an offline
	// event (identified by event_id) that does not exist in the database.
	ErrEventNotFound = errors.New("offline event was not found")

	// ErrEventNotPending is returned when a status transition expects the
	// event to be pending (or syncing) but finds it in another state,
	// typically because a concurrent operation already moved it on.
	ErrEventNotPending = errors.New("offline event is not in the expected status")

	// ErrConflictNotFound is returned when a conflict-log operation targets
	// a record that does not exist or has already been resolved.
	ErrConflictNotFound = errors.New("conflict record was not found")
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

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
