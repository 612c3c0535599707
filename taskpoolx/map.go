// Package taskpoolx provides convenience helpers layered on top of
// [taskpool.Pool]'s public surface. It never reaches into the core
// scheduler's internals — every helper here is expressible by any caller
// using only exported taskpool operations.
package taskpoolx

import (
	"context"

	"github.com/joeycumines/go-taskpool"
)

// MapTasks submits one independent task per item, in slice order, then
// waits for every result in that same order, short-circuiting on the first
// error (though it still waits for, and discards, every other submission's
// outcome before returning, so it never leaves unconsumed entries behind in
// the pool's process table).
func MapTasks[T, R any](ctx context.Context, p *taskpool.Pool[R], items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	handles := make([]taskpool.Handle, len(items))
	for i, item := range items {
		handles[i] = p.SubmitTask(func(ctx context.Context) (R, error) {
			return fn(ctx, item)
		})
	}

	results := make([]R, len(items))
	var firstErr error
	for i, h := range handles {
		v, err := p.WaitTask(ctx, h)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results[i] = v
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
