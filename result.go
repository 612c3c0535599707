package taskpool

import "context"

// PollTaskEither performs a non-blocking inspection of h. It reports
// (outcome, true) once h has settled (after which h is consumed: its procs
// entry is removed, so a later poll/wait on the same handle reports
// UnknownTaskError once h has also left the graph). It reports
// (zero, false) while h is still pending (submitted but not yet spawned, or
// running), and also while a consumed h is still a node in the graph — a
// finished task stays there until every task depending on it has finished.
func (p *Pool[R]) PollTaskEither(h Handle) (Outcome[R], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pollTaskEitherLocked(h)
}

func (p *Pool[R]) pollTaskEitherLocked(h Handle) (Outcome[R], bool) {
	if f, ok := p.procs[h]; ok {
		if o, settled := f.pollSettled(); settled {
			delete(p.procs, h)
			return o, true
		}
		return Outcome[R]{}, false
	}
	if p.graph.nodes[h] != nil {
		return Outcome[R]{}, false
	}
	return Outcome[R]{Err: &UnknownTaskError{Handle: h}}, true
}

// WaitTaskEither blocks until h settles or ctx is done, whichever comes
// first, retrying PollTaskEither under the pool's condition variable rather
// than busy-polling.
func (p *Pool[R]) WaitTaskEither(ctx context.Context, h Handle) (Outcome[R], error) {
	stop := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	})
	defer stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		if o, ok := p.pollTaskEitherLocked(h); ok {
			return o, nil
		}
		if err := ctx.Err(); err != nil {
			return Outcome[R]{}, err
		}
		p.cond.Wait()
	}
}

// PollTask is PollTaskEither with the Outcome unpacked: err is non-nil
// whenever the outcome represents a failure, otherwise value is the success
// result. ok mirrors PollTaskEither's second return.
func (p *Pool[R]) PollTask(h Handle) (value R, ok bool, err error) {
	o, ok := p.PollTaskEither(h)
	if !ok {
		return value, false, nil
	}
	return o.Value, true, o.Err
}

// WaitTask is WaitTaskEither with the Outcome unpacked.
func (p *Pool[R]) WaitTask(ctx context.Context, h Handle) (R, error) {
	o, err := p.WaitTaskEither(ctx, h)
	if err != nil {
		var zero R
		return zero, err
	}
	return o.Value, o.Err
}
