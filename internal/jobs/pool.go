package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrPoolStopped is returned by Run once the pool has been stopped.
var ErrPoolStopped = errors.New("worker pool is stopped")

// Pool bounds how many tasks run at once across every batch submitted to it.
type Pool struct {
	workers  chan struct{} // Limits concurrent tasks
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	metrics  *Metrics
	logger   *slog.Logger
}

// NewPool creates a pool with maxWorkers slots. Values below one become one.
func NewPool(maxWorkers int, logger *slog.Logger) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		workers:  make(chan struct{}, maxWorkers),
		stopChan: make(chan struct{}),
		metrics:  NewMetrics(),
		logger:   logger,
	}
}

// Size returns the number of worker slots.
func (p *Pool) Size() int {
	return cap(p.workers)
}

// Stop prevents new tasks from being scheduled and waits for running ones.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopChan)
	})
	p.wg.Wait()
	p.logger.Debug("worker pool stopped")
}

func (p *Pool) stopped() bool {
	select {
	case <-p.stopChan:
		return true
	default:
		return false
	}
}

// Run calls task(i) for every i in [0, n), at most Size() at a time. It
// returns after every started task has finished. When ctx is done or the pool
// is stopped, remaining tasks are not started and the corresponding error is
// returned; a task that already started always runs to completion.
func (p *Pool) Run(ctx context.Context, n int, task func(i int)) error {
	p.metrics.RecordBatch(n)

	var (
		batch   sync.WaitGroup
		stopErr error
	)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			stopErr = err
			p.metrics.RecordCancelled(n - i)
			break
		}
		// select picks randomly among ready cases, so a closed stopChan must win first.
		if p.stopped() {
			stopErr = ErrPoolStopped
			p.metrics.RecordCancelled(n - i)
			break
		}

		select {
		case p.workers <- struct{}{}:
		case <-ctx.Done():
			stopErr = ctx.Err()
		case <-p.stopChan:
			stopErr = ErrPoolStopped
		}
		if stopErr != nil {
			p.metrics.RecordCancelled(n - i)
			break
		}

		batch.Add(1)
		p.wg.Add(1)
		go func(i int) {
			defer func() {
				<-p.workers // Release worker slot
				p.wg.Done()
				batch.Done()
			}()

			p.metrics.RecordStarted()
			start := time.Now()
			task(i)
			p.metrics.RecordCompleted(time.Since(start))
		}(i)
	}

	batch.Wait()
	return stopErr
}

// Metrics returns a copy of the pool metrics.
func (p *Pool) Metrics() MetricsData {
	return p.metrics.Snapshot()
}
