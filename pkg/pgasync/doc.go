// Package pgasync adapts a blocking, pool-based PostgreSQL connection API
// for use from latency-sensitive code. A closure that performs blocking
// database work is handed to a Dispatcher, which runs it on a bounded set of
// worker goroutines (or on the caller's goroutine, depending on the
// configured mode) and exposes completion through a Future.
//
// Pool-acquisition failures and query failures are translated into a single
// Error type with two kinds, so callers can distinguish "could not check out
// a connection" from "the database operation itself failed" with errors.Is.
//
// The package does not implement pooling, query building, or a wire
// protocol; all of that belongs to pgx. It only decides where blocking calls
// run and how their errors surface. There are no retries in the dispatch
// path, and cancelling an Await does not cancel work that has already been
// dispatched.
package pgasync
