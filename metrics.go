package taskpool

import "sync/atomic"

// counters holds the pool's live, atomically-updated tallies. It is never
// copied; Pool.Metrics takes a plain-data snapshot of it instead.
type counters struct {
	submitted atomic.Uint64
	spawned   atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	cancelled atomic.Uint64
	running   atomic.Int64
}

// Metrics is a point-in-time snapshot of a Pool's optional runtime
// counters, mirroring the teacher's Metrics/WithMetrics shape: attached via
// an option, safe for concurrent use, retrieved as an immutable copy.
// Unlike the teacher's Metrics, this one carries no latency-percentile
// estimator — this domain's testable properties are about graph/slot/
// process-table invariants, not per-task latency distributions, so that
// machinery has no home here.
type Metrics struct {
	Submitted uint64
	Spawned   uint64
	Completed uint64
	Failed    uint64
	// Cancelled counts only victims that had not yet been spawned at the
	// moment of cancellation. A task already running when cancelled settles
	// through the ordinary epilogue path and is tallied under Failed
	// instead (its outcome is a CancelledError, which is a failure) — so
	// Cancelled and Failed never double-count the same task.
	Cancelled uint64
	Running   int64
}

func (c *counters) snapshot() Metrics {
	return Metrics{
		Submitted: c.submitted.Load(),
		Spawned:   c.spawned.Load(),
		Completed: c.completed.Load(),
		Failed:    c.failed.Load(),
		Cancelled: c.cancelled.Load(),
		Running:   c.running.Load(),
	}
}

func (p *Pool[R]) metricSubmitted() {
	if p.metrics != nil {
		p.metrics.submitted.Add(1)
	}
}

func (p *Pool[R]) metricSpawned() {
	if p.metrics != nil {
		p.metrics.spawned.Add(1)
		p.metrics.running.Add(1)
	}
}

func (p *Pool[R]) metricSettled(failed bool) {
	if p.metrics == nil {
		return
	}
	p.metrics.running.Add(-1)
	if failed {
		p.metrics.failed.Add(1)
	} else {
		p.metrics.completed.Add(1)
	}
}

func (p *Pool[R]) metricCancelled(n int) {
	if p.metrics != nil && n > 0 {
		p.metrics.cancelled.Add(uint64(n))
	}
}
