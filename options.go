package taskpool

import (
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// poolOptions holds configuration resolved from a set of Option values,
// mirroring the teacher's loopOptions/LoopOption/resolveLoopOptions shape.
type poolOptions struct {
	logger  *logiface.Logger[*stumpy.Event]
	metrics *counters
}

// Option configures a Pool at construction time.
type Option interface {
	applyPool(*poolOptions)
}

type optionFunc func(*poolOptions)

func (f optionFunc) applyPool(o *poolOptions) { f(o) }

// WithLogger overrides the pool's structured logger. Pass nil to disable
// logging entirely (equivalent to WithNoLogging).
func WithLogger(logger *logiface.Logger[*stumpy.Event]) Option {
	return optionFunc(func(o *poolOptions) {
		o.logger = logger
	})
}

// WithNoLogging disables structured logging for the pool.
func WithNoLogging() Option {
	return optionFunc(func(o *poolOptions) {
		o.logger = nil
	})
}

// WithMetrics enables runtime counters, retrievable via Pool.Metrics.
func WithMetrics(enabled bool) Option {
	return optionFunc(func(o *poolOptions) {
		if enabled {
			o.metrics = &counters{}
		} else {
			o.metrics = nil
		}
	})
}

func resolvePoolOptions(opts []Option) *poolOptions {
	cfg := &poolOptions{
		logger: defaultLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyPool(cfg)
	}
	return cfg
}

// defaultLogger builds the pack's stock JSON logger writing to stderr, the
// same construction shown in the logiface-stumpy package's own example.
func defaultLogger() *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(
		stumpy.WithStumpy(stumpy.WithWriter(os.Stderr)),
	)
}
