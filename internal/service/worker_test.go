package service

import (
	"context"
	"hotel-booking/internal/model"
	"hotel-booking/internal/schedule"
	"hotel-booking/internal/strategy"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/common"
	"hotel-booking/pkg/logger"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingExecutor struct {
	release chan struct{}
	active  int32
	peak    int32
	done    int32

	mu   sync.Mutex
	seen []string
}

func (e *blockingExecutor) Execute(ctx context.Context, msg broker.Message) error {
	n := atomic.AddInt32(&e.active, 1)
	for {
		p := atomic.LoadInt32(&e.peak)
		if n <= p || atomic.CompareAndSwapInt32(&e.peak, p, n) {
			break
		}
	}
	<-e.release
	atomic.AddInt32(&e.active, -1)

	e.mu.Lock()
	e.seen = append(e.seen, msg.Task)
	e.mu.Unlock()
	atomic.AddInt32(&e.done, 1)
	return nil
}

func TestWorkerService_BoundedConcurrency(t *testing.T) {
	b := broker.NewMemoryBroker(16, 10*time.Millisecond)
	for i := 0; i < 6; i++ {
		msg, err := broker.NewMessage("periodic_task", nil)
		require.NoError(t, err)
		require.NoError(t, b.Publish(context.Background(), "tasks", msg))
	}

	exec := &blockingExecutor{release: make(chan struct{})}
	w := NewWorkerService(logger.NewNop(), b, exec, "tasks", 2, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&exec.active) == 2 }, time.Second, 5*time.Millisecond)
	// Slots are full, the rest stays on the queue.
	assert.Equal(t, 4, b.Len("tasks"))

	close(exec.release)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&exec.done) == 6 }, time.Second, 5*time.Millisecond)
	assert.LessOrEqual(t, atomic.LoadInt32(&exec.peak), int32(2))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorkerService_RunsBeatMessages(t *testing.T) {
	b := broker.NewMemoryBroker(16, 10*time.Millisecond)
	beat := NewSchedulerService(logger.NewNop(), schedule.Default(), b, "tasks", time.Second, time.UTC)

	start := time.Date(2026, 10, 18, 8, 59, 55, 0, time.UTC)
	beat.Tick(context.Background(), start)
	// 09:00:00 fires the 1-day reminder and the heartbeat.
	require.Len(t, beat.Tick(context.Background(), start.Add(5*time.Second)), 2)

	repo := &fakeTaskRunRepo{}
	registry := strategy.NewRegistry(strategy.NewPeriodicStrategy(logger.NewNop(), nil, 0))
	w := NewWorkerService(logger.NewNop(), b, NewTaskExecutor(logger.NewNop(), repo, registry), "tasks", 1, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return len(repo.updates) == 2
	}, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	statuses := map[string]model.TaskRunStatus{}
	for _, run := range repo.updates {
		statuses[run.TaskName] = run.Status
	}
	assert.Equal(t, model.StatusCompleted, statuses[common.TASK_PERIODIC])
	// No reminder strategy is registered in this worker.
	assert.Equal(t, model.StatusFailed, statuses[common.TASK_BOOKING_REMINDER_1DAY])
}
