package taskpool

import (
	"context"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Run drives the pool: it repeatedly reserves ready, slotted work and spawns
// it, until ctx is done. Run is the only operation that actually invokes
// task bodies; without a goroutine calling Run, submissions merely queue in
// the graph. Run returns ctx.Err() once cancelled.
func (p *Pool[R]) Run(ctx context.Context) error {
	for {
		batch, err := p.reserveReady(ctx)
		if err != nil {
			return err
		}
		for _, rt := range batch {
			p.spawnReady(ctx, rt)
		}
	}
}

// reserveReady blocks, via cond.Wait, until at least one slot is free and
// the graph has at least one ready node, or ctx is done. It decrements
// avail by the size of the returned batch in the same critical section that
// discovers it, so two concurrent callers of reserveReady never double-book
// the same slot.
func (p *Pool[R]) reserveReady(ctx context.Context) ([]readyTask[R], error) {
	stop := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	})
	defer stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.avail > 0 {
			if batch := p.graph.ready(p.procs, p.avail); len(batch) > 0 {
				p.avail -= len(batch)
				return batch, nil
			}
		}
		p.cond.Wait()
	}
}

// spawnReady launches one ready task's future and registers it in procs,
// unless the graph node vanished (cancelled) between reservation and spawn,
// in which case the freshly-launched future is cancelled immediately rather
// than left to run unobserved.
func (p *Pool[R]) spawnReady(ctx context.Context, rt readyTask[R]) {
	f := spawn(ctx, rt.Handle, rt.Body, p.epilogue)

	p.mu.Lock()
	if p.graph.nodes[rt.Handle] == nil {
		p.mu.Unlock()
		f.Cancel(rt.Handle)
		return
	}
	p.procs[rt.Handle] = f
	p.mu.Unlock()

	p.metricSpawned()
	p.logEvent("spawned", rt.Handle, nil, nil)
}

// epilogue runs once per future, on every exit path, and folds the task's
// completion into the graph and slot accounting: restoring a slot, flipping
// the node's outgoing edges to Completed (or pruning it if it has none),
// and waking any blocked reserveReady/WaitTaskEither callers. It reads its
// own outcome straight from f, not via p.procs, since a concurrent
// CancelTask/CancelAll may have already removed h's procs entry by the
// time this runs.
func (p *Pool[R]) epilogue(h Handle, f *future[R]) {
	var failed bool
	if o, settled := f.pollSettled(); settled {
		failed = o.Failed()
	}

	p.mu.Lock()
	p.avail = min(p.slots, p.avail+1)
	p.graph.finish(h)
	p.cond.Broadcast()
	p.mu.Unlock()

	p.metricSettled(failed)
	p.logEvent("settled", h, nil, func(b *logiface.Builder[*stumpy.Event]) {
		b.Bool("failed", failed)
	})
}
