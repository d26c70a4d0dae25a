// Package retry provides automatic retry with exponential backoff for
// transient connection failures during pool construction.
//
// The dispatch path in pkg/pgasync never retries; this package exists only
// so connectors can ride out momentary conditions (server starting up,
// brief network blips) while establishing the pool the adapter wraps.
//
// Error classification and backoff timing are pluggable via the
// pgasync.ErrorClassifier and pgasync.BackoffStrategy interfaces.
package retry
