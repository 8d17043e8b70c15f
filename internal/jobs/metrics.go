package jobs

import (
	"sync"
	"time"
)

// MetricsData represents pool metrics without mutex (safe for copying)
type MetricsData struct {
	BatchesRun         int64         `json:"batches_run"`
	TasksSubmitted     int64         `json:"tasks_submitted"`
	TasksCompleted     int64         `json:"tasks_completed"`
	TasksCancelled     int64         `json:"tasks_cancelled"`
	TasksInFlight      int64         `json:"tasks_in_flight"`
	TotalExecutionTime time.Duration `json:"total_execution_time_ns"`
	AverageTaskTime    time.Duration `json:"average_task_time_ns"`
	LastUpdated        time.Time     `json:"last_updated"`
}

// Metrics tracks task execution in a Pool
type Metrics struct {
	mu   sync.RWMutex
	data MetricsData
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{data: MetricsData{LastUpdated: time.Now()}}
}

// RecordBatch counts a submitted batch of n tasks
func (m *Metrics) RecordBatch(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.BatchesRun++
	m.data.TasksSubmitted += int64(n)
	m.data.LastUpdated = time.Now()
}

// RecordStarted marks a task as running
func (m *Metrics) RecordStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.TasksInFlight++
}

// RecordCompleted records a finished task and its execution time
func (m *Metrics) RecordCompleted(executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.TasksInFlight--
	m.data.TasksCompleted++
	m.data.TotalExecutionTime += executionTime
	m.data.AverageTaskTime = m.data.TotalExecutionTime / time.Duration(m.data.TasksCompleted)
	m.data.LastUpdated = time.Now()
}

// RecordCancelled counts tasks that were never started
func (m *Metrics) RecordCancelled(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.TasksCancelled += int64(n)
	m.data.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current metrics
func (m *Metrics) Snapshot() MetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data
}
