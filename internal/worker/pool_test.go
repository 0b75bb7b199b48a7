package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolRunsEveryTaskBeforeStop(t *testing.T) {
	p := NewPool(3, 100)
	var n atomic.Int32
	for i := 0; i < 50; i++ {
		require.NoError(t, p.Submit(func() { n.Add(1) }))
	}
	p.Stop()
	require.Equal(t, int32(50), n.Load())
}

func TestSubmitAfterStop(t *testing.T) {
	p := NewPool(1, 1)
	p.Stop()
	p.Stop()
	require.ErrorIs(t, p.Submit(func() {}), ErrStopped)
}

func TestQueueFull(t *testing.T) {
	p := NewPool(1, 1)
	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(func() { close(started); <-block }))
	<-started
	require.NoError(t, p.Submit(func() {}))
	require.ErrorIs(t, p.Submit(func() {}), ErrQueueFull)
	close(block)
	p.Stop()
}

func TestPanickingTaskDoesNotKillWorker(t *testing.T) {
	p := NewPool(1, 4)
	var ran atomic.Bool
	require.NoError(t, p.Submit(func() { panic("boom") }))
	require.NoError(t, p.Submit(func() { ran.Store(true) }))
	p.Stop()
	require.True(t, ran.Load())
}
