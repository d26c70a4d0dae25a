package pgasync

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Dispatcher runs blocking closures off the caller's critical path.
//
// In ModeWorker each closure gets its own goroutine, gated by a bounded
// number of blocking slots; the returned future resolves when the closure
// finishes. In ModeInline the closure runs on the calling goroutine and the
// returned future is already resolved.
//
// There are no retries and no recovery: the first failure resolves the
// future with the translated error. A panic inside a dispatched closure is
// captured and re-raised in the awaiting goroutine.
//
// Thread-Safety: safe for concurrent use by multiple goroutines.
type Dispatcher struct {
	mode   Mode
	slots  chan struct{}
	logger Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup

	dispatched atomic.Uint64
	completed  atomic.Uint64
	failed     atomic.Uint64
	inFlight   atomic.Int64
}

// DispatcherStats is a point-in-time snapshot of dispatcher counters.
type DispatcherStats struct {
	Dispatched uint64 // closures accepted for execution
	Completed  uint64 // closures that resolved without error
	Failed     uint64 // closures that resolved with an error or panic
	InFlight   int64  // closures dispatched but not yet resolved
}

// nopLogger is the default when DispatchConfig.Logger is nil.
type nopLogger struct{}

func (nopLogger) Verbose(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Error(string, ...interface{})   {}

// NewDispatcher creates a Dispatcher from the given configuration.
func NewDispatcher(cfg DispatchConfig) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := cfg.MaxWorkers
	if workers == 0 {
		workers = DefaultMaxWorkers
	}

	var logger Logger = cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	return &Dispatcher{
		mode:   cfg.Mode,
		slots:  make(chan struct{}, workers),
		logger: logger,
	}, nil
}

// Mode returns the dispatcher's blocking strategy.
func (d *Dispatcher) Mode() Mode {
	return d.mode
}

// Stats returns a snapshot of the dispatcher's counters.
func (d *Dispatcher) Stats() DispatcherStats {
	return DispatcherStats{
		Dispatched: d.dispatched.Load(),
		Completed:  d.completed.Load(),
		Failed:     d.failed.Load(),
		InFlight:   d.inFlight.Load(),
	}
}

// Close marks the dispatcher closed and waits for in-flight work.
// Dispatch calls after Close resolve immediately with ErrDispatcherClosed.
// Close is idempotent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.wg.Wait()
}

// acquire registers a unit of work, failing if the dispatcher is closed.
func (d *Dispatcher) acquire() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.wg.Add(1)
	return true
}

// Dispatch runs fn according to the dispatcher's mode and returns a future
// resolving to fn's result.
//
// In ModeWorker the closure starts as soon as a blocking slot is free and
// runs to completion regardless of ctx; ctx is passed through so the
// closure's own database calls can observe cancellation. In ModeInline the
// closure has already completed when Dispatch returns, and a panic inside
// it propagates directly to the caller.
func Dispatch[T any](d *Dispatcher, ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	if !d.acquire() {
		var zero T
		return resolvedFuture(zero, ErrDispatcherClosed)
	}

	jobID := uuid.New()
	d.dispatched.Add(1)
	d.inFlight.Add(1)

	if d.mode == ModeInline {
		defer d.wg.Done()
		defer d.inFlight.Add(-1)

		d.logger.Verbose("job %s running inline", jobID)
		value, err := fn(ctx)
		d.count(jobID, err)
		return resolvedFuture(value, err)
	}

	f := newFuture[T]()
	go func() {
		defer d.wg.Done()
		defer d.inFlight.Add(-1)

		// Blocking slot acquisition is deliberately not ctx-gated:
		// dispatched work always runs, mirroring the no-cancellation
		// contract of the dispatch primitive.
		d.slots <- struct{}{}
		defer func() { <-d.slots }()

		defer func() {
			if p := recover(); p != nil {
				d.failed.Add(1)
				d.logger.Error("job %s panicked: %v", jobID, p)
				f.resolvePanic(p)
			}
		}()

		d.logger.Verbose("job %s running on worker", jobID)
		value, err := fn(ctx)
		d.count(jobID, err)
		f.resolve(value, err)
	}()
	return f
}

func (d *Dispatcher) count(jobID uuid.UUID, err error) {
	if err != nil {
		d.failed.Add(1)
		d.logger.Verbose("job %s failed: %v", jobID, err)
		return
	}
	d.completed.Add(1)
	d.logger.Verbose("job %s completed", jobID)
}
