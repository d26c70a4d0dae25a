package pgasync

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := pgasync.Exec(ctx, pool, "DELETE FROM widgets").Await(ctx)
//	if errors.Is(err, pgasync.ErrCheckout) {
//	    // Pool exhausted or connection acquisition failed
//	}
var (
	// ErrCheckout indicates a connection could not be checked out of the pool.
	ErrCheckout = errors.New("connection checkout failed")

	// ErrQuery indicates the database operation itself failed after a
	// connection was successfully checked out.
	ErrQuery = errors.New("query failed")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates initial pool construction failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrDispatcherClosed indicates work was dispatched after Close().
	ErrDispatcherClosed = errors.New("dispatcher is closed")

	// ErrUnsupportedAuthMethod indicates the requested authentication
	// method is not supported by the connector factory.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ErrorKind classifies a dispatched operation's failure.
type ErrorKind int

const (
	// KindCheckout means the pool could not supply a connection.
	KindCheckout ErrorKind = iota

	// KindQuery means the operation failed on a checked-out connection.
	KindQuery
)

// String returns a human-readable representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindCheckout:
		return "checkout"
	case KindQuery:
		return "query"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Error is the unified error type surfaced by dispatched database
// operations. It wraps the originating pool or pgx error verbatim; no
// information is added or retried away.
//
// Error supports errors.Is against ErrCheckout / ErrQuery for kind
// classification, and errors.As / errors.Is against the wrapped cause
// (e.g. *pgconn.PgError, pgx.ErrNoRows).
type Error struct {
	Kind  ErrorKind
	cause error
}

func newCheckoutError(err error) *Error {
	return &Error{Kind: KindCheckout, cause: err}
}

func newQueryError(err error) *Error {
	return &Error{Kind: KindQuery, cause: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindCheckout:
		return fmt.Sprintf("connection checkout failed: %v", e.cause)
	default:
		return fmt.Sprintf("query failed: %v", e.cause)
	}
}

// Unwrap exposes the originating error for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches the kind sentinels so callers can classify without
// unwrapping manually.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrCheckout:
		return e.Kind == KindCheckout
	case ErrQuery:
		return e.Kind == KindQuery
	}
	return false
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrCheckout):
		return ExitConnectionError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrQuery):
		return ExitExecutionFailed
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
