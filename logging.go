package taskpool

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// logEvent emits one structured log line for a scheduler event (task
// submitted, spawned, settled, cancelled, slots resized). It is a thin
// wrapper around the logiface builder chain so call sites read like
// eventloop's own category/message/context log shape, without hand-rolling
// a LogEntry struct: logiface (and its stumpy backend) already is that,
// and both are nil-safe, so a pool built with WithNoLogging pays only the
// cost of a few no-op method calls.
func (p *Pool[R]) logEvent(event string, h Handle, err error, fields func(*logiface.Builder[*stumpy.Event])) {
	var b *logiface.Builder[*stumpy.Event]
	if err != nil {
		b = p.log.Err()
	} else {
		b = p.log.Info()
	}
	b = b.Str("event", event)
	if h != 0 {
		b = b.Uint64("handle", uint64(h))
	}
	if fields != nil {
		fields(b)
	}
	if err != nil {
		b = b.Err(err)
	}
	b.Log("taskpool")
}
