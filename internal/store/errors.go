package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrTripNotFound is returned when no trip record matches the given ID,
	// or when FinishTrip targets a trip that is not running anymore.
	ErrTripNotFound = errors.New("trip was not found")

	// ErrTripAlreadyExists is returned when a trip with the same ID is
	// already stored.
	ErrTripAlreadyExists = errors.New("trip already exists")

	// ErrCardNotFound is returned when no saved card matches the given ID.
	ErrCardNotFound = errors.New("card was not found")

	// ErrNothingSaved is returned when an INSERT completes without error but
	// affects zero rows.
	ErrNothingSaved = errors.New("nothing was saved")

	// ErrUnsupportedDSN is returned when a DSN cannot be mapped to a driver.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails,
	// typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
