package taskpool

import (
	"context"
	"sync"
	"sync/atomic"
)

// future is this package's Completion Handle: the runtime-provided
// asynchronous value a task body settles into. It exposes exactly the
// three operations the scheduler needs — spawn, non-blocking inspection,
// and cooperative cancellation — grounded on the teacher's promise.go
// (State/Result/ToChannel) and abort.go (reason-carrying cancellation),
// trimmed to this package's narrower contract.
type future[R any] struct {
	done    chan struct{}
	cancel  context.CancelFunc
	settled atomic.Bool
	outcome Outcome[R]
	once    sync.Once
}

// spawn launches body on its own goroutine, derived from parent via a
// cancellable context, and settles the future when it returns or panics.
// onSettle runs exactly once, on every exit path (the epilogue's "finally"
// guarantee), after the outcome has been recorded; it receives the future
// itself so the caller can read the settled outcome even if, by the time
// onSettle runs, the pool's own process table no longer has an entry for h
// (e.g. a concurrent CancelTask already removed it).
func spawn[R any](parent context.Context, h Handle, body Task[R], onSettle func(Handle, *future[R])) *future[R] {
	ctx, cancel := context.WithCancel(parent)
	f := &future[R]{done: make(chan struct{}), cancel: cancel}

	go func() {
		outcome := f.run(ctx, h, body)
		f.settle(outcome)
		cancel() // release the context's resources promptly once settled
		onSettle(h, f)
	}()

	return f
}

// run invokes body, converting a recovered panic into a PanicError so a
// single misbehaving body cannot take down the driver loop.
func (f *future[R]) run(ctx context.Context, h Handle, body Task[R]) (outcome Outcome[R]) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome[R]{Err: &PanicError{Handle: h, Value: r}}
		}
	}()
	v, err := body(ctx)
	if err == nil && ctx.Err() != nil {
		// The body returned without honoring cancellation but produced no
		// error of its own: still surface the cancellation, not a
		// misleadingly-successful outcome.
		return Outcome[R]{Err: &CancelledError{Handle: h}}
	}
	return Outcome[R]{Value: v, Err: err}
}

// settle records the outcome exactly once; later calls are no-ops, which
// keeps Cancel safe to call after (or racing with) natural completion.
func (f *future[R]) settle(o Outcome[R]) {
	f.once.Do(func() {
		f.outcome = o
		f.settled.Store(true)
		close(f.done)
	})
}

// pollSettled is the non-blocking inspection operation: Maybe outcome.
func (f *future[R]) pollSettled() (Outcome[R], bool) {
	if !f.settled.Load() {
		return Outcome[R]{}, false
	}
	return f.outcome, true
}

// Cancel requests cooperative cancellation of the body (via its context)
// and, unless the future has already settled, settles it at once with a
// CancelledError; the body's own later outcome is then ignored, so callers
// are never left waiting forever on a future whose body ignored ctx.Done().
func (f *future[R]) Cancel(h Handle) {
	f.cancel()
	f.settle(Outcome[R]{Err: &CancelledError{Handle: h}})
}
