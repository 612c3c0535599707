// Package taskpool implements a dependency-aware task pool: an in-process
// scheduler that executes user-submitted units of asynchronous work subject
// to a dynamically adjustable concurrency limit and an arbitrary dependency
// DAG among tasks.
//
// # Architecture
//
// A [Pool] is built around five shared cells — the dependency graph, the
// process table, the slot counter, the available-slot counter, and the
// handle token counter — all mutated under a single mutex, with a
// [sync.Cond] providing the retry/blocking discipline described in the
// package's design notes. A [Pool.Run] goroutine is the driver loop: it
// reserves free slots against ready graph nodes and spawns their bodies.
//
// Tasks are submitted with [Pool.SubmitTask] and may be linked into a
// dependency DAG with [Pool.SequenceTasks] or [Pool.SubmitDependentTask].
// A task becomes eligible to run only once every task it depends on has
// completed. Results are retained in the process table until consumed via
// [Pool.PollTask] / [Pool.WaitTask] (or their [Outcome]-returning
// counterparts), and are never discarded automatically — an unconsumed
// result is a documented memory-retention contract, not a bug. Tasks may be
// cancelled with [Pool.CancelTask], which also unschedules every
// transitively dependent task, or all at once with [Pool.CancelAll].
//
// # Thread Safety
//
// Every exported [Pool] method is safe to call concurrently. Only three
// operations block: [Pool.Run] (while no slot/ready-node pair exists),
// [Pool.WaitTaskEither] and [Pool.WaitTask] (while the target task is still
// in flight), and the task body itself, which is ordinary user code.
//
// # Usage
//
//	pool := taskpool.New[int](2)
//	go pool.Run(ctx)
//
//	a := pool.SubmitTask(func(ctx context.Context) (int, error) { return 1, nil })
//	b := pool.SubmitDependentTask(a, func(ctx context.Context) (int, error) { return 2, nil })
//
//	v, err := pool.WaitTask(ctx, b)
package taskpool
