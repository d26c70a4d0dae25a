package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockClassifier treats errors as transient unless listed as fatal.
type mockClassifier struct {
	fatal []error
}

func (m *mockClassifier) IsTransient(err error) bool {
	for _, f := range m.fatal {
		if errors.Is(err, f) {
			return false
		}
	}
	return err != nil
}

// mockOperation fails a fixed number of times before succeeding.
type mockOperation struct {
	failures int
	calls    int
	err      error
}

func (m *mockOperation) run(ctx context.Context) error {
	m.calls++
	if m.calls <= m.failures {
		return m.err
	}
	return nil
}

func fastBackoff(maxAttempts int) *ExponentialBackoff {
	return NewExponentialBackoff(maxAttempts,
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(5*time.Millisecond),
		WithJitter(0))
}

func TestExecute_SucceedsFirstAttempt(t *testing.T) {
	op := &mockOperation{}
	executor := NewExecutor(&mockClassifier{}, fastBackoff(3))

	if err := executor.Execute(context.Background(), op.run); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if op.calls != 1 {
		t.Errorf("calls = %d, want 1", op.calls)
	}
}

func TestExecute_SucceedsAfterTransientFailures(t *testing.T) {
	op := &mockOperation{failures: 2, err: errors.New("connection refused")}
	executor := NewExecutor(&mockClassifier{}, fastBackoff(3))

	if err := executor.Execute(context.Background(), op.run); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if op.calls != 3 {
		t.Errorf("calls = %d, want 3", op.calls)
	}
}

func TestExecute_FatalErrorNotRetried(t *testing.T) {
	errFatal := errors.New("authentication failed")
	op := &mockOperation{failures: 5, err: errFatal}
	executor := NewExecutor(&mockClassifier{fatal: []error{errFatal}}, fastBackoff(3))

	err := executor.Execute(context.Background(), op.run)
	if !errors.Is(err, errFatal) {
		t.Fatalf("Execute() error = %v, want %v", err, errFatal)
	}
	if op.calls != 1 {
		t.Errorf("calls = %d, want 1 (fatal errors must not be retried)", op.calls)
	}
}

func TestExecute_ExhaustsAttempts(t *testing.T) {
	errTransient := errors.New("i/o timeout")
	op := &mockOperation{failures: 100, err: errTransient}
	executor := NewExecutor(&mockClassifier{}, fastBackoff(2))

	err := executor.Execute(context.Background(), op.run)
	if !errors.Is(err, errTransient) {
		t.Fatalf("Execute() error = %v, want last transient error", err)
	}
	// Initial attempt plus two retries.
	if op.calls != 3 {
		t.Errorf("calls = %d, want 3", op.calls)
	}
}

func TestExecute_ZeroAttemptsMeansNoRetries(t *testing.T) {
	errTransient := errors.New("connection reset")
	op := &mockOperation{failures: 100, err: errTransient}
	executor := NewExecutor(&mockClassifier{}, fastBackoff(0))

	if err := executor.Execute(context.Background(), op.run); !errors.Is(err, errTransient) {
		t.Fatalf("Execute() error = %v, want %v", err, errTransient)
	}
	if op.calls != 1 {
		t.Errorf("calls = %d, want 1", op.calls)
	}
}

func TestExecute_ContextCancellationStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	op := &mockOperation{failures: 100, err: errors.New("connection refused")}
	executor := NewExecutor(&mockClassifier{}, NewExponentialBackoff(10,
		WithInitialDelay(time.Hour),
		WithJitter(0)))

	done := make(chan error, 1)
	go func() {
		done <- executor.Execute(ctx, op.run)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Execute() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Execute() did not return after cancellation")
	}
}

func TestExecute_OnRetryCallback(t *testing.T) {
	var attempts []int
	op := &mockOperation{failures: 2, err: errors.New("too many connections")}
	executor := NewExecutor(&mockClassifier{}, fastBackoff(5)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			attempts = append(attempts, attempt)
		})

	if err := executor.Execute(context.Background(), op.run); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if len(attempts) != 2 || attempts[0] != 0 || attempts[1] != 1 {
		t.Errorf("onRetry attempts = %v, want [0 1]", attempts)
	}
}

func TestWithOnRetry_DoesNotMutateReceiver(t *testing.T) {
	base := NewExecutor(&mockClassifier{}, fastBackoff(1))
	derived := base.WithOnRetry(func(int, error, time.Duration) {})

	if base.onRetry != nil {
		t.Error("WithOnRetry must not modify the original executor")
	}
	if derived.onRetry == nil {
		t.Error("derived executor missing the callback")
	}
}

func TestNewExecutor_PanicsOnNilDependencies(t *testing.T) {
	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	assertPanics("nil classifier", func() {
		NewExecutor(nil, fastBackoff(1))
	})
	assertPanics("nil strategy", func() {
		NewExecutor(&mockClassifier{}, nil)
	})
}
