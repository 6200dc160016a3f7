package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("this e-mail is already used")

	// ErrUserNotFound is returned when a lookup by email or token produces
	// an empty result set.
	ErrUserNotFound = errors.New("user not found")

	// ErrOfferNotFound is returned when a query, update or delete targets an
	// offer that does not exist.
	ErrOfferNotFound = errors.New("offer not found")

	// ErrConcurrentModification is returned when a conditional write matches
	// no row because the record was changed by another request since it was
	// read.
	ErrConcurrentModification = errors.New("record was modified concurrently")

	// ErrUnavailable is returned when the database reports a transient
	// condition (lost connection, deadlock, busy database). The request may
	// succeed if repeated.
	ErrUnavailable = errors.New("database is temporarily unavailable")

	// ErrUnsupportedDriver is returned by [NewDB] for an unknown driver name.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
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
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingDetails is returned when offer details cannot be converted
	// to or from their JSON column representation.
	ErrEncodingDetails = errors.New("failed to encode offer details")
)
