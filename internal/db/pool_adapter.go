package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/r-ashe/pgasync/pkg/pgasync"
)

// PoolAdapter adapts *pgxpool.Pool to implement the pgasync.ConnectionPool
// interface, so dispatched closures see the decoupled PooledConn/Tx types
// rather than pgx-specific ones.
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolAdapter struct {
	pool *pgxpool.Pool
}

// NewPoolAdapter creates a new PoolAdapter wrapping the given pool.
func NewPoolAdapter(pool *pgxpool.Pool) pgasync.ConnectionPool {
	return &PoolAdapter{pool: pool}
}

// Acquire checks a connection out of the pool.
func (p *PoolAdapter) Acquire(ctx context.Context) (pgasync.PooledConn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pooledConnAdapter{conn: conn}, nil
}

// Ping verifies the pool can reach the database.
func (p *PoolAdapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the underlying pool.
func (p *PoolAdapter) Close() {
	p.pool.Close()
}

// pooledConnAdapter adapts *pgxpool.Conn to implement pgasync.PooledConn.
type pooledConnAdapter struct {
	conn *pgxpool.Conn
}

// Exec executes a query on this specific connection.
func (c *pooledConnAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.conn.Exec(ctx, sql, args...)
}

// Query executes a query that returns rows.
func (c *pooledConnAdapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

// QueryRow executes a query that is expected to return at most one row.
func (c *pooledConnAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.conn.QueryRow(ctx, sql, args...)
}

// Begin starts a transaction on this connection.
func (c *pooledConnAdapter) Begin(ctx context.Context) (pgasync.Tx, error) {
	tx, err := c.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &txAdapter{tx: tx}, nil
}

// Release returns the connection to the pool.
func (c *pooledConnAdapter) Release() {
	c.conn.Release()
}

// txAdapter adapts pgx.Tx to implement pgasync.Tx.
type txAdapter struct {
	tx pgx.Tx
}

func (t *txAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.tx.Exec(ctx, sql, args...)
}

func (t *txAdapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.tx.Query(ctx, sql, args...)
}

func (t *txAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.tx.QueryRow(ctx, sql, args...)
}

func (t *txAdapter) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *txAdapter) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Verify adapters implement the pgasync interfaces at compile time
var (
	_ pgasync.ConnectionPool = (*PoolAdapter)(nil)
	_ pgasync.PooledConn     = (*pooledConnAdapter)(nil)
	_ pgasync.Tx             = (*txAdapter)(nil)
)
