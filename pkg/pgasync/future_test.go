package pgasync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_AwaitReturnsResolvedValue(t *testing.T) {
	f := resolvedFuture(42, nil)

	value, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestFuture_AwaitReturnsResolvedError(t *testing.T) {
	errBoom := errors.New("boom")
	f := resolvedFuture(0, errBoom)

	_, err := f.Await(context.Background())
	assert.True(t, errors.Is(err, errBoom))
}

func TestFuture_AwaitIsRepeatable(t *testing.T) {
	f := resolvedFuture("once", nil)

	for i := 0; i < 3; i++ {
		value, err := f.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "once", value)
	}
}

func TestFuture_AwaitRespectsContext(t *testing.T) {
	f := newFuture[int]()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Await(ctx)
	assert.True(t, errors.Is(err, context.Canceled))

	// Abandoning the wait does not consume the result.
	f.resolve(9, nil)
	value, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, value)
}

func TestFuture_ReadyResultBeatsExpiredContext(t *testing.T) {
	f := resolvedFuture(1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	value, err := f.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestFuture_DoneClosesOnResolution(t *testing.T) {
	f := newFuture[int]()

	select {
	case <-f.Done():
		t.Fatal("Done must not be closed before resolution")
	default:
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		f.resolve(3, nil)
	}()

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("Done was not closed after resolution")
	}
}

func TestFuture_AwaitReRaisesPanic(t *testing.T) {
	f := newFuture[int]()
	f.resolvePanic("stored panic")

	defer func() {
		assert.Equal(t, "stored panic", recover())
	}()
	_, _ = f.Await(context.Background())
	t.Fatal("unreachable: Await should have panicked")
}
