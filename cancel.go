package taskpool

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// runningVictim pairs a cancelled, already-spawned task's own handle with
// its future, so it can be cancelled with its own identity rather than the
// ancestor's — a future's CancelledError.Handle must name the task that
// settled, not whatever task triggered the cancellation.
type runningVictim[R any] struct {
	handle Handle
	future *future[R]
}

// CancelTask cancels h and every task transitively depending on it. Each
// affected node is removed from the graph; any already-finished ancestor
// whose last remaining dependent this unblocks is pruned too, generalizing
// the epilogue's own pruning walk. Running futures among the cancelled set
// have their own context cancelled after the lock is released, so their own
// epilogues still run (restoring slots, broadcasting) but find nothing left
// to mutate in the graph.
func (p *Pool[R]) CancelTask(h Handle) {
	p.mu.Lock()
	if p.graph.nodes[h] == nil {
		p.mu.Unlock()
		return
	}

	victims := p.graph.descendants(h)
	var running []runningVictim[R]
	var unspawned int
	for _, v := range victims {
		n := p.graph.nodes[v]
		if n == nil {
			continue
		}
		p.graph.detach(v, n.parents)
		if f, ok := p.procs[v]; ok {
			running = append(running, runningVictim[R]{handle: v, future: f})
			delete(p.procs, v)
		} else if !n.finished {
			unspawned++
		}
		delete(p.graph.nodes, v)
		p.graph.dead++
	}
	p.graph.maybeCompact()
	p.cond.Broadcast()
	p.mu.Unlock()

	for _, rv := range running {
		rv.future.Cancel(rv.handle)
	}
	// Already-running victims will also be tallied as Failed by their own
	// epilogue (a CancelledError outcome is a failure), so only the
	// not-yet-spawned victims are counted here, keeping Cancelled and
	// Failed from double-counting the same task.
	p.metricCancelled(unspawned)
	p.logEvent("cancelled", h, nil, func(b *logiface.Builder[*stumpy.Event]) {
		b.Int("victims", len(victims))
	})
}

// CancelAll cancels every task currently submitted to the pool, running or
// not. It is the bulk counterpart of CancelTask: rather than walking
// descendants, it simply discards the entire graph and process table.
func (p *Pool[R]) CancelAll() {
	p.mu.Lock()
	old := p.procs
	n := len(p.graph.nodes)
	var unspawned int
	for h, node := range p.graph.nodes {
		if _, ok := p.procs[h]; !ok && !node.finished {
			unspawned++
		}
	}
	p.graph = newDepGraph[R]()
	p.procs = make(map[Handle]*future[R])
	p.cond.Broadcast()
	p.mu.Unlock()

	for h, f := range old {
		f.Cancel(h)
	}
	// As in CancelTask, running victims are left for their own epilogue to
	// tally as Failed; only the not-yet-spawned ones are counted here.
	p.metricCancelled(unspawned)
	p.logEvent("cancelled_all", 0, nil, func(b *logiface.Builder[*stumpy.Event]) {
		b.Int("victims", n)
	})
}
