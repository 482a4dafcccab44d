package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsTasks(t *testing.T) {
	pool := New(4)
	defer pool.Shutdown()

	var count int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		err := pool.SubmitWait(func() {
			atomic.AddInt64(&count, 1)
			wg.Done()
		})
		require.NoError(t, err)
	}

	wg.Wait()
	assert.EqualValues(t, 20, atomic.LoadInt64(&count))
}

func TestPoolBackpressure(t *testing.T) {
	pool := New(1)
	defer pool.Shutdown()

	block := make(chan struct{})
	// Occupy the single worker, then fill the buffered queue.
	_ = pool.Submit(func() { <-block })

	var full bool
	for i := 0; i < 10; i++ {
		if err := pool.Submit(func() {}); err == ErrPoolFull {
			full = true
			break
		}
	}
	close(block)

	assert.True(t, full, "expected ErrPoolFull once queue saturates")
}

func TestPoolSubmitAfterShutdown(t *testing.T) {
	pool := New(2)
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), ErrPoolClosed)
}

func TestPoolSurvivesPanickingTask(t *testing.T) {
	pool := New(1)
	defer pool.Shutdown()

	require.NoError(t, pool.SubmitWait(func() { panic("boom") }))

	done := make(chan struct{})
	require.NoError(t, pool.SubmitWait(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive panicking task")
	}
}
