package pgasync

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ConnectionPool abstracts the blocking connection pool being wrapped.
// Satisfied by *pgxpool.Pool through the internal/db adapter; tests supply
// fakes. The adapter never implements pooling itself.
//
// Thread-Safety: implementations must be safe for concurrent use
// (pgxpool.Pool is).
type ConnectionPool interface {
	// Acquire checks a connection out of the pool.
	// Caller must call Release() on the returned PooledConn when done.
	Acquire(ctx context.Context) (PooledConn, error)

	// Ping verifies the pool can reach the database.
	Ping(ctx context.Context) error

	// Close closes the pool and all its connections.
	Close()
}

// PooledConn is a connection checked out of the pool. Dispatched closures
// receive one of these; it is valid until Release.
type PooledConn interface {
	// Exec executes a query without returning any rows.
	// A multi-statement SQL string without arguments is executed as a batch.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// Query executes a query that returns rows.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	// QueryRow executes a query that is expected to return at most one row.
	// Errors are deferred until Row's Scan method is called.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row

	// Begin starts a transaction on this connection.
	Begin(ctx context.Context) (Tx, error)

	// Release returns the connection to the pool.
	Release()
}

// Tx is a database transaction running on a checked-out connection.
// This interface decouples callers from pgx.Tx.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// AsyncPool pairs a blocking connection pool with a Dispatcher. All pooled
// operations (Run, Transaction, Exec, Select, Get, BatchExec) check out a
// connection inside the dispatched closure, so pool-acquisition failures
// surface as KindCheckout and everything after acquisition as KindQuery.
type AsyncPool struct {
	pool ConnectionPool
	disp *Dispatcher
}

// Option configures an AsyncPool.
type Option func(*DispatchConfig)

// WithMode selects the blocking strategy.
func WithMode(mode Mode) Option {
	return func(cfg *DispatchConfig) { cfg.Mode = mode }
}

// WithMaxWorkers sets the number of concurrent blocking slots for ModeWorker.
func WithMaxWorkers(n int) Option {
	return func(cfg *DispatchConfig) { cfg.MaxWorkers = n }
}

// WithLogger sets the logger used for per-job diagnostics.
func WithLogger(logger Logger) Option {
	return func(cfg *DispatchConfig) { cfg.Logger = logger }
}

// New wraps a blocking connection pool for asynchronous use.
// The pool remains owned by the caller; Close drains the dispatcher but
// does not close the pool.
func New(pool ConnectionPool, opts ...Option) (*AsyncPool, error) {
	var cfg DispatchConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	disp, err := NewDispatcher(cfg)
	if err != nil {
		return nil, err
	}

	return &AsyncPool{
		pool: pool,
		disp: disp,
	}, nil
}

// Pool returns the wrapped connection pool.
func (p *AsyncPool) Pool() ConnectionPool {
	return p.pool
}

// Dispatcher returns the dispatcher running this pool's blocking work.
func (p *AsyncPool) Dispatcher() *Dispatcher {
	return p.disp
}

// Close drains the dispatcher, waiting for in-flight closures.
// The underlying pool is caller-owned and is not closed here.
func (p *AsyncPool) Close() {
	p.disp.Close()
}
