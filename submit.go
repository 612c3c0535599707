package taskpool

import (
	"context"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// SubmitTask registers body as a new, dependency-free node and returns its
// handle. The body is not invoked until the driver loop (Run) finds it
// ready and a slot is free.
func (p *Pool[R]) SubmitTask(body Task[R]) Handle {
	p.mu.Lock()
	h := p.nextHandle()
	p.graph.insert(h, body)
	p.cond.Broadcast()
	p.mu.Unlock()

	p.metricSubmitted()
	p.logEvent("submitted", h, nil, nil)
	return h
}

// SubmitTaskDiscard submits a fire-and-forget task: nothing ever consumes
// its outcome, so the wrapper deletes its own procs entry before returning,
// rather than retaining it forever (the fate of every other submission
// whose result is never polled or waited on).
func (p *Pool[R]) SubmitTaskDiscard(body Task[R]) Handle {
	cell := make(chan Handle, 1)
	wrapped := func(ctx context.Context) (R, error) {
		h := <-cell
		defer func() {
			p.mu.Lock()
			delete(p.procs, h)
			p.mu.Unlock()
		}()
		return body(ctx)
	}

	p.mu.Lock()
	h := p.nextHandle()
	p.graph.insert(h, wrapped)
	cell <- h
	p.cond.Broadcast()
	p.mu.Unlock()

	p.metricSubmitted()
	p.logEvent("submitted", h, nil, func(b *logiface.Builder[*stumpy.Event]) {
		b.Bool("discard", true)
	})
	return h
}

// SequenceTasks declares that child depends on parent: child will not
// become ready until parent has completed. It is a no-op if parent is no
// longer a node in the graph (already finished-and-pruned with no
// dependents, or cancelled) — callers racing a cancellation simply lose the
// edge rather than blocking forever on a vanished parent.
func (p *Pool[R]) SequenceTasks(parent, child Handle) {
	p.mu.Lock()
	p.graph.addEdge(parent, child)
	p.mu.Unlock()
}

// SubmitDependentTask submits body as a node depending on parent, in one
// critical section, so no other goroutine can observe the node before the
// dependency edge exists.
func (p *Pool[R]) SubmitDependentTask(parent Handle, body Task[R]) Handle {
	p.mu.Lock()
	h := p.nextHandle()
	p.graph.insert(h, body)
	p.graph.addEdge(parent, h)
	p.cond.Broadcast()
	p.mu.Unlock()

	p.metricSubmitted()
	p.logEvent("submitted", h, nil, func(b *logiface.Builder[*stumpy.Event]) {
		b.Uint64("parent", uint64(parent))
	})
	return h
}

// SubmitDependentTaskDiscard is the fire-and-forget counterpart of
// SubmitDependentTask: it combines SubmitTaskDiscard's self-cleaning
// wrapper with a dependency edge to parent, established before the node is
// ever visible to the driver loop.
func (p *Pool[R]) SubmitDependentTaskDiscard(parent Handle, body Task[R]) Handle {
	cell := make(chan Handle, 1)
	wrapped := func(ctx context.Context) (R, error) {
		h := <-cell
		defer func() {
			p.mu.Lock()
			delete(p.procs, h)
			p.mu.Unlock()
		}()
		return body(ctx)
	}

	p.mu.Lock()
	h := p.nextHandle()
	p.graph.insert(h, wrapped)
	p.graph.addEdge(parent, h)
	cell <- h
	p.cond.Broadcast()
	p.mu.Unlock()

	p.metricSubmitted()
	p.logEvent("submitted", h, nil, func(b *logiface.Builder[*stumpy.Event]) {
		b.Uint64("parent", uint64(parent))
		b.Bool("discard", true)
	})
	return h
}
