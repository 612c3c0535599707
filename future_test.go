package taskpool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawn_SuccessSettles(t *testing.T) {
	done := make(chan Handle, 1)
	f := spawn[int](context.Background(), 1, func(ctx context.Context) (int, error) {
		return 42, nil
	}, func(h Handle, _ *future[int]) { done <- h })

	select {
	case h := <-done:
		assert.Equal(t, Handle(1), h)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for settle")
	}

	o, ok := f.pollSettled()
	require.True(t, ok)
	assert.Equal(t, 42, o.Value)
	assert.NoError(t, o.Err)
}

func TestSpawn_FailurePropagates(t *testing.T) {
	wantErr := errors.New("boom")
	done := make(chan Handle, 1)
	f := spawn[int](context.Background(), 1, func(ctx context.Context) (int, error) {
		return 0, wantErr
	}, func(h Handle, _ *future[int]) { done <- h })
	<-done

	o, ok := f.pollSettled()
	require.True(t, ok)
	assert.True(t, o.Failed())
	assert.Equal(t, wantErr, o.Err)
}

func TestSpawn_PanicRecoveredAsPanicError(t *testing.T) {
	done := make(chan Handle, 1)
	f := spawn[int](context.Background(), 7, func(ctx context.Context) (int, error) {
		panic("kaboom")
	}, func(h Handle, _ *future[int]) { done <- h })
	<-done

	o, ok := f.pollSettled()
	require.True(t, ok)
	var pe *PanicError
	require.ErrorAs(t, o.Err, &pe)
	assert.Equal(t, Handle(7), pe.Handle)
	assert.Equal(t, "kaboom", pe.Value)
}

func TestSpawn_CancelBeforeNaturalCompletionSettlesCancelled(t *testing.T) {
	started := make(chan struct{})
	block := make(chan struct{})
	done := make(chan Handle, 1)
	f := spawn[int](context.Background(), 3, func(ctx context.Context) (int, error) {
		close(started)
		<-block
		return 1, nil
	}, func(h Handle, _ *future[int]) { done <- h })

	<-started
	f.Cancel(3)

	o, ok := f.pollSettled()
	require.True(t, ok)
	var ce *CancelledError
	require.ErrorAs(t, o.Err, &ce)
	assert.ErrorIs(t, o.Err, context.Canceled)

	close(block)
	<-done
}

func TestSpawn_BodyIgnoresCancellationStillReportsCancelled(t *testing.T) {
	started := make(chan struct{})
	done := make(chan Handle, 1)
	f := spawn[int](context.Background(), 9, func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 5, nil // body returns success despite cancellation
	}, func(h Handle, _ *future[int]) { done <- h })

	<-started
	f.Cancel(9)
	<-done

	o, ok := f.pollSettled()
	require.True(t, ok)
	var ce *CancelledError
	require.ErrorAs(t, o.Err, &ce)
}
