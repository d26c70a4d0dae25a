package retry

import (
	"testing"
	"time"
)

// noJitter pins the random source to the midpoint so delays are exact.
func noJitter() float64 { return 0.5 }

func TestNextDelay_ExponentialGrowth(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithJitterFunc(noJitter))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := b.NextDelay(tt.attempt); got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestNextDelay_CappedAtMaxDelay(t *testing.T) {
	b := NewExponentialBackoff(10,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Second),
		WithMultiplier(2.0),
		WithJitterFunc(noJitter))

	if got := b.NextDelay(20); got != time.Second {
		t.Errorf("NextDelay(20) = %v, want cap %v", got, time.Second)
	}
}

func TestNextDelay_JitterStaysWithinBounds(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(time.Second),
		WithJitter(0.1))

	for i := 0; i < 100; i++ {
		got := b.NextDelay(0)
		if got < 900*time.Millisecond || got > 1100*time.Millisecond {
			t.Fatalf("NextDelay(0) = %v, want within +/- 10%% of 1s", got)
		}
	}
}

func TestNextDelay_JitterDisabled(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(time.Second),
		WithJitter(0))

	if got := b.NextDelay(0); got != time.Second {
		t.Errorf("NextDelay(0) = %v, want exactly 1s without jitter", got)
	}
}

func TestNewExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(3)

	if b.MaxAttempts() != 3 {
		t.Errorf("MaxAttempts() = %d, want 3", b.MaxAttempts())
	}
	if b.InitialDelay() != 100*time.Millisecond {
		t.Errorf("InitialDelay() = %v, want 100ms", b.InitialDelay())
	}
	if b.MaxDelay() != 30*time.Second {
		t.Errorf("MaxDelay() = %v, want 30s", b.MaxDelay())
	}
}
