package pgasync

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// Optional converts a "no rows" query failure into an absent result.
//
// Designed to wrap Await on a Get future:
//
//	widget, ok, err := pgasync.Optional(f.Await(ctx))
//	if err != nil { ... }
//	if !ok { /* not found */ }
//
// Any error other than a KindQuery error wrapping pgx.ErrNoRows is passed
// through unchanged.
func Optional[T any](value T, err error) (T, bool, error) {
	if err == nil {
		return value, true, nil
	}

	var zero T
	if errors.Is(err, ErrQuery) && errors.Is(err, pgx.ErrNoRows) {
		return zero, false, nil
	}
	return zero, false, err
}
