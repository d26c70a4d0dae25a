package pgasync

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "checkout", KindCheckout.String())
	assert.Equal(t, "query", KindQuery.String())
	assert.Equal(t, "Unknown(99)", ErrorKind(99).String())
}

func TestError_KindClassification(t *testing.T) {
	checkout := newCheckoutError(errors.New("pool timeout"))
	assert.True(t, errors.Is(checkout, ErrCheckout))
	assert.False(t, errors.Is(checkout, ErrQuery))

	query := newQueryError(errors.New("bad statement"))
	assert.True(t, errors.Is(query, ErrQuery))
	assert.False(t, errors.Is(query, ErrCheckout))
}

func TestError_PreservesCause(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	err := newQueryError(pgErr)

	var unwrapped *pgconn.PgError
	assert.True(t, errors.As(err, &unwrapped))
	assert.Equal(t, "23505", unwrapped.Code)
	assert.Equal(t, pgErr, errors.Unwrap(err))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "connection checkout failed: pool timeout",
		newCheckoutError(errors.New("pool timeout")).Error())
	assert.Equal(t, "query failed: bad statement",
		newQueryError(errors.New("bad statement")).Error())
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"invalid config", fmt.Errorf("bad workers: %w", ErrInvalidConfig), ExitConfigError},
		{"unsupported auth", ErrUnsupportedAuthMethod, ExitConfigError},
		{"checkout", newCheckoutError(errors.New("pool timeout")), ExitConnectionError},
		{"connection failed", fmt.Errorf("wrapped: %w", ErrConnectionFailed), ExitConnectionError},
		{"query", newQueryError(errors.New("boom")), ExitExecutionFailed},
		{"connect pattern", errors.New("failed to connect to db.example.com"), ExitConnectionError},
		{"refused pattern", errors.New("dial tcp: connection refused"), ExitConnectionError},
		{"unknown", errors.New("something else"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}
