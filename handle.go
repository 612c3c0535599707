package taskpool

import (
	"context"
	"fmt"
)

// Handle is the opaque identity of a task submitted to a [Pool]. Handles are
// minted from a monotonic counter: two concurrent submissions to the same
// pool never receive the same value, and a handle is never reused. Callers
// must not assume contiguity, only uniqueness within a single pool.
type Handle uint64

// String implements fmt.Stringer for diagnostic output and log fields.
func (h Handle) String() string {
	return fmt.Sprintf("task#%d", uint64(h))
}

// Task is a suspended, not-yet-invoked unit of work producing a value of the
// pool's uniform result type R, or failing. A body is invoked exactly once,
// only after every task it depends on has completed. Callers needing
// heterogeneous result types should parameterize multiple pools, or carry a
// tagged variant as R.
type Task[R any] func(ctx context.Context) (R, error)

// Outcome is the tagged union Success(value) | Failure(error) yielded by a
// settled task. Err == nil means success; a non-nil Err means the task's
// body returned a failure, panicked, was cancelled, or never existed (see
// [UnknownTaskError]).
type Outcome[R any] struct {
	Value R
	Err   error
}

// Failed reports whether this outcome represents a failure.
func (o Outcome[R]) Failed() bool { return o.Err != nil }
