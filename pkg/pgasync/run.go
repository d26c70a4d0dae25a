package pgasync

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Run dispatches fn with a checked-out connection and returns a future
// resolving to fn's result.
//
// This is the core operation: every other pooled helper is Run with a
// canned closure. Acquisition failures resolve the future with a
// KindCheckout error; an error from fn resolves it with a KindQuery error
// wrapping fn's error verbatim. The connection is released when fn returns.
func Run[T any](ctx context.Context, p *AsyncPool, fn func(ctx context.Context, conn PooledConn) (T, error)) *Future[T] {
	return Dispatch(p.disp, ctx, func(ctx context.Context) (T, error) {
		var zero T

		conn, err := p.pool.Acquire(ctx)
		if err != nil {
			return zero, newCheckoutError(err)
		}
		defer conn.Release()

		value, err := fn(ctx, conn)
		if err != nil {
			return zero, newQueryError(err)
		}
		return value, nil
	})
}

// Transaction dispatches fn inside a transaction on a checked-out
// connection. The transaction commits if fn returns nil and rolls back
// otherwise; a failed commit surfaces as a KindQuery error. Like Run,
// there are no retries.
func Transaction[T any](ctx context.Context, p *AsyncPool, fn func(ctx context.Context, tx Tx) (T, error)) *Future[T] {
	return Dispatch(p.disp, ctx, func(ctx context.Context) (T, error) {
		var zero T

		conn, err := p.pool.Acquire(ctx)
		if err != nil {
			return zero, newCheckoutError(err)
		}
		defer conn.Release()

		tx, err := conn.Begin(ctx)
		if err != nil {
			return zero, newQueryError(err)
		}

		value, err := fn(ctx, tx)
		if err != nil {
			_ = tx.Rollback(ctx)
			return zero, newQueryError(err)
		}

		if err := tx.Commit(ctx); err != nil {
			return zero, newQueryError(err)
		}
		return value, nil
	})
}

// Exec dispatches a statement and resolves to the number of rows affected.
func Exec(ctx context.Context, p *AsyncPool, sql string, args ...any) *Future[int64] {
	return Run(ctx, p, func(ctx context.Context, conn PooledConn) (int64, error) {
		tag, err := conn.Exec(ctx, sql, args...)
		if err != nil {
			return 0, err
		}
		return tag.RowsAffected(), nil
	})
}

// Select dispatches a query and resolves to all rows collected with scan.
func Select[T any](ctx context.Context, p *AsyncPool, scan pgx.RowToFunc[T], sql string, args ...any) *Future[[]T] {
	return Run(ctx, p, func(ctx context.Context, conn PooledConn) ([]T, error) {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return nil, err
		}
		return pgx.CollectRows(rows, scan)
	})
}

// Get dispatches a query expected to return exactly one row. A query that
// returns no rows resolves with a KindQuery error wrapping pgx.ErrNoRows;
// combine with Optional to turn that into an absent result.
func Get[T any](ctx context.Context, p *AsyncPool, scan pgx.RowToFunc[T], sql string, args ...any) *Future[T] {
	return Run(ctx, p, func(ctx context.Context, conn PooledConn) (T, error) {
		var zero T
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return zero, err
		}
		return pgx.CollectOneRow(rows, scan)
	})
}

// BatchExec dispatches a multi-statement SQL string. Statements run
// sequentially on one checked-out connection; the resolved tag is that of
// the last statement.
func (p *AsyncPool) BatchExec(ctx context.Context, sql string) *Future[pgconn.CommandTag] {
	return Run(ctx, p, func(ctx context.Context, conn PooledConn) (pgconn.CommandTag, error) {
		return conn.Exec(ctx, sql)
	})
}

// Ping dispatches a connectivity check through the pool.
func (p *AsyncPool) Ping(ctx context.Context) *Future[struct{}] {
	return Dispatch(p.disp, ctx, func(ctx context.Context) (struct{}, error) {
		if err := p.pool.Ping(ctx); err != nil {
			return struct{}{}, newCheckoutError(err)
		}
		return struct{}{}, nil
	})
}
