package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunCompletesEveryTask(t *testing.T) {
	pool := NewPool(3, nil)
	defer pool.Stop()

	results := make([]int, 50)
	err := pool.Run(context.Background(), len(results), func(i int) {
		results[i] = i * i
	})
	require.NoError(t, err)

	for i, r := range results {
		assert.Equal(t, i*i, r)
	}

	m := pool.Metrics()
	assert.Equal(t, int64(1), m.BatchesRun)
	assert.Equal(t, int64(50), m.TasksSubmitted)
	assert.Equal(t, int64(50), m.TasksCompleted)
	assert.Equal(t, int64(0), m.TasksInFlight)
}

func TestPool_BoundsConcurrency(t *testing.T) {
	pool := NewPool(2, nil)
	defer pool.Stop()

	var running, peak int32
	var wg sync.WaitGroup
	for b := 0; b < 3; b++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Run(context.Background(), 10, func(int) {
				n := atomic.AddInt32(&running, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&running, -1)
			})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2), "slots are shared across batches")
}

func TestPool_CancelledContextStopsScheduling(t *testing.T) {
	pool := NewPool(1, nil)
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	var started int32
	err := pool.Run(ctx, 10, func(i int) {
		atomic.AddInt32(&started, 1)
		if i == 2 {
			cancel()
		}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, atomic.LoadInt32(&started), int32(10))
	assert.Greater(t, pool.Metrics().TasksCancelled, int64(0))
}

func TestPool_StoppedPoolRejectsWork(t *testing.T) {
	pool := NewPool(1, nil)
	pool.Stop()
	pool.Stop()

	// Occupy the only slot so Run must wait on the stop channel.
	pool.workers <- struct{}{}
	err := pool.Run(context.Background(), 1, func(int) { t.Fatal("task must not run") })
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPool_StoppedPoolWithFreeSlotsRunsNothing(t *testing.T) {
	pool := NewPool(4, nil)
	pool.Stop()

	for attempt := 0; attempt < 200; attempt++ {
		var started int32
		err := pool.Run(context.Background(), 8, func(int) { atomic.AddInt32(&started, 1) })
		require.ErrorIs(t, err, ErrPoolStopped)
		require.Equal(t, int32(0), atomic.LoadInt32(&started))
	}
	assert.Equal(t, int64(1600), pool.Metrics().TasksCancelled)
}

func TestNewPool_MinimumSize(t *testing.T) {
	assert.Equal(t, 1, NewPool(0, nil).Size())
	assert.Equal(t, 4, NewPool(4, nil).Size())
}
