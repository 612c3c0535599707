package taskpool

import (
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Pool is a dependency-aware task pool: an in-process scheduler for a
// uniform result type R, holding a fixed-but-resizable concurrency budget
// and an arbitrary dependency DAG among submitted tasks.
//
// All exported methods are safe for concurrent use. The five cells named in
// the package design notes — graph, procs, slots, avail, tokens — are
// guarded by mu; cond is the single retry/blocking primitive every
// operation that must wait (the driver loop, WaitTaskEither) uses in place
// of software transactional memory.
type Pool[R any] struct {
	mu   sync.Mutex
	cond *sync.Cond

	slots  int
	avail  int
	tokens uint64

	graph *depGraph[R]
	procs map[Handle]*future[R]

	log     *logiface.Logger[*stumpy.Event]
	metrics *counters
}

// New creates a Pool with the given initial concurrency limit (slots must
// be positive). The pool accepts submissions immediately; nothing runs
// until a goroutine calls [Pool.Run].
func New[R any](slots int, opts ...Option) *Pool[R] {
	if slots < 1 {
		slots = 1
	}
	cfg := resolvePoolOptions(opts)

	p := &Pool[R]{
		slots:   slots,
		avail:   slots,
		graph:   newDepGraph[R](),
		procs:   make(map[Handle]*future[R]),
		log:     cfg.logger,
		metrics: cfg.metrics,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// SetSlots adjusts the pool's concurrency limit. Growing unblocks the
// driver loop (ready tasks, if any, can now be reserved); shrinking never
// preempts bodies already in flight — it only reduces how many new ones
// may start.
func (p *Pool[R]) SetSlots(n int) {
	p.mu.Lock()
	diff := n - p.slots
	p.avail = max(0, p.avail+diff)
	p.slots = max(0, n)
	p.cond.Broadcast()
	p.mu.Unlock()

	p.logEvent("slots_resized", 0, nil, func(b *logiface.Builder[*stumpy.Event]) {
		b.Int("slots", p.slots)
	})
}

// Metrics returns a point-in-time snapshot of the pool's counters. If
// metrics collection was not enabled via WithMetrics, the zero value is
// returned.
func (p *Pool[R]) Metrics() Metrics {
	if p.metrics == nil {
		return Metrics{}
	}
	return p.metrics.snapshot()
}

func (p *Pool[R]) nextHandle() Handle {
	p.tokens++
	return Handle(p.tokens)
}
