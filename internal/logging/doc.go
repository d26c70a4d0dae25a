// Package logging provides concrete implementations of the pgasync.Logger
// interface.
//
// Available implementations:
//   - ConsoleLogger: writes formatted messages to stderr with thread-safe output
//   - NullLogger: discards all messages (useful for testing)
//   - ZapLogger: routes messages to a zap logger for structured logging
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
