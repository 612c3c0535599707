package taskpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDriver_IndependentTasksRunInParallel covers scenario 1: tasks with no
// dependency relation between them execute concurrently, bounded only by
// the slot count.
func TestDriver_IndependentTasksRunInParallel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 4
	p := New[int](n, WithNoLogging())
	go p.Run(ctx)

	var inFlight, peak int32
	release := make(chan struct{})
	handles := make([]Handle, n)
	for i := 0; i < n; i++ {
		handles[i] = p.SubmitTask(func(ctx context.Context) (int, error) {
			cur := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
					break
				}
			}
			<-release
			atomic.AddInt32(&inFlight, -1)
			return 0, nil
		})
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&inFlight) == n
	}, timeoutShort, tickShort, "all independent tasks should be running concurrently")

	close(release)
	for _, h := range handles {
		_, err := p.WaitTask(context.Background(), h)
		require.NoError(t, err)
	}
	assert.EqualValues(t, n, atomic.LoadInt32(&peak))
}

// TestDriver_LinearChainRunsInOrder covers scenario 2: a strict chain of
// dependencies runs its bodies strictly in order.
func TestDriver_LinearChainRunsInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New[int](3, WithNoLogging())
	go p.Run(ctx)

	var mu sync.Mutex
	var order []int

	record := func(i int) Task[int] {
		return func(ctx context.Context) (int, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return i, nil
		}
	}

	h1 := p.SubmitTask(record(1))
	h2 := p.SubmitDependentTask(h1, record(2))
	h3 := p.SubmitDependentTask(h2, record(3))

	_, err := p.WaitTask(context.Background(), h3)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3}, order)
}

// TestDriver_DiamondDependencyRunsBothBranches covers scenario 3.
func TestDriver_DiamondDependencyRunsBothBranches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New[string](2, WithNoLogging())
	go p.Run(ctx)

	root := p.SubmitTask(func(ctx context.Context) (string, error) { return "root", nil })
	left := p.SubmitDependentTask(root, func(ctx context.Context) (string, error) { return "left", nil })
	right := p.SubmitDependentTask(root, func(ctx context.Context) (string, error) { return "right", nil })

	join := p.SubmitTask(func(ctx context.Context) (string, error) { return "join", nil })
	p.SequenceTasks(left, join)
	p.SequenceTasks(right, join)

	v, err := p.WaitTask(context.Background(), join)
	require.NoError(t, err)
	assert.Equal(t, "join", v)

	// root/left/right were never polled before now: an unconsumed result is
	// retained, not discarded, so each still yields its own value here.
	expected := map[Handle]string{root: "root", left: "left", right: "right"}
	for h, want := range expected {
		v, err := p.WaitTask(context.Background(), h)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

// TestDriver_CancelSubtreeUnschedulesDescendants covers scenario 4: cancelling
// a not-yet-run task also removes its not-yet-run dependents, and they never
// execute their bodies.
func TestDriver_CancelSubtreeUnschedulesDescendants(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Block the single slot so nothing downstream can start before cancellation lands.
	p := New[int](1, WithNoLogging())
	go p.Run(ctx)

	block := make(chan struct{})
	started := make(chan struct{})
	blocker := p.SubmitTask(func(ctx context.Context) (int, error) {
		close(started)
		<-block
		return 0, nil
	})
	<-started

	var ranChild atomic.Bool
	root := p.SubmitTask(noopBody)
	child := p.SubmitDependentTask(root, func(ctx context.Context) (int, error) {
		ranChild.Store(true)
		return 0, nil
	})

	p.CancelTask(root)
	close(block)

	_, err := p.WaitTask(context.Background(), blocker)
	require.NoError(t, err)

	_, err = p.WaitTask(context.Background(), child)
	require.Error(t, err)
	assert.False(t, ranChild.Load())
}

// TestDriver_ResizeUpUnblocksQueuedWork covers scenario 5: growing the slot
// count while tasks are queued immediately admits more concurrent work.
func TestDriver_ResizeUpUnblocksQueuedWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New[int](1, WithNoLogging())
	go p.Run(ctx)

	block := make(chan struct{})
	var running atomic.Int32
	task := func(ctx context.Context) (int, error) {
		running.Add(1)
		<-block
		running.Add(-1)
		return 0, nil
	}

	h1 := p.SubmitTask(task)
	h2 := p.SubmitTask(task)

	require.Eventually(t, func() bool { return running.Load() == 1 }, timeoutShort, tickShort)

	p.SetSlots(2)

	require.Eventually(t, func() bool { return running.Load() == 2 }, timeoutShort, tickShort)

	close(block)
	_, err := p.WaitTask(context.Background(), h1)
	require.NoError(t, err)
	_, err = p.WaitTask(context.Background(), h2)
	require.NoError(t, err)
}

// TestDriver_FireAndForgetCleansUpWithoutConsumer covers scenario 6: a
// SubmitTaskDiscard task's procs entry is removed automatically, never
// depending on a poll/wait from the caller.
func TestDriver_FireAndForgetCleansUpWithoutConsumer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New[int](1, WithNoLogging())
	go p.Run(ctx)

	ran := make(chan struct{})
	h := p.SubmitTaskDiscard(func(ctx context.Context) (int, error) {
		close(ran)
		return 1, nil
	})

	select {
	case <-ran:
	case <-time.After(timeoutShort):
		t.Fatal("fire-and-forget task never ran")
	}

	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		_, ok := p.procs[h]
		return !ok
	}, timeoutShort, tickShort, "discarded task's procs entry should self-clean")
}
