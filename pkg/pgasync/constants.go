package pgasync

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect or check out a connection
	ExitExecutionFailed = 13 // Database operation failed
)

const (
	// DefaultMaxWorkers is the default number of concurrent blocking slots
	// a Dispatcher hands out in ModeWorker. Sized to match the default
	// connection pool so dispatched closures rarely queue behind each other
	// waiting for a connection.
	DefaultMaxWorkers = 8

	// DefaultRetryInitialDelay is the initial delay before the first
	// reconnect attempt. Retry applies to pool construction only, never to
	// dispatched work.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the maximum delay between reconnect attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the maximum number of reconnect attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultConnectTimeout bounds initial connection establishment.
	DefaultConnectTimeout = 10 * time.Second
)
