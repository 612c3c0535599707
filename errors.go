package taskpool

import (
	"context"
	"fmt"
)

// UnknownTaskError is returned as a task's outcome when a poll/wait targets
// a handle that is neither in the process table (spawned, unconsumed) nor
// in the dependency graph (submitted, not yet spawned). It is never fatal
// to the pool: the caller simply observes a failure outcome for that
// handle.
type UnknownTaskError struct {
	Handle Handle
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("taskpool: unknown task %s", e.Handle)
}

// CancelledError wraps context.Canceled as the outcome of a task whose
// future was cancelled (via CancelTask or CancelAll) before its body
// produced a more specific result.
type CancelledError struct {
	Handle Handle
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("taskpool: %s was cancelled", e.Handle)
}

// Unwrap allows errors.Is(err, context.Canceled) to match a CancelledError.
func (e *CancelledError) Unwrap() error { return context.Canceled }

// PanicError wraps a panic recovered from a task body, so that a single
// misbehaving body fails only its own task rather than tearing down the
// driver loop.
type PanicError struct {
	Handle Handle
	Value  any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("taskpool: %s panicked: %v", e.Handle, e.Value)
}

// Unwrap returns the underlying error if the recovered panic value is
// itself an error, enabling errors.Is/errors.As through the panic cause.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
