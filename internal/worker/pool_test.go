package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/BoxLedger_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

type blockingJob struct {
	release chan struct{}
}

func (j *blockingJob) Process(ctx context.Context) error {
	<-j.release
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	pool.Enqueue(job)
	pool.Enqueue(&testJob{executed: &executed, err: errors.New("boom")})

	// Wait a bit for workers to process
	time.Sleep(TestWorkerProcessWaitTime * time.Millisecond)

	pool.Stop()

	assert.Equal(t, int32(TestExpectedJobCount), atomic.LoadInt32(&executed))
}

func TestPool_TryEnqueueFull(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	block := &blockingJob{release: make(chan struct{})}
	assert.True(t, pool.TryEnqueue(block))

	// wait until the worker holds the blocking job so the queue slot is free
	assert.Eventually(t, func() bool { return len(pool.jobQueue) == 0 }, time.Second, 5*time.Millisecond)

	var executed int32
	assert.True(t, pool.TryEnqueue(&testJob{executed: &executed}))
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}))

	close(block.release)
	pool.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_StopDrainsAndRejects(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed int32
	pool := NewPool(1, TestQueueSize)
	for i := 0; i < 5; i++ {
		pool.Enqueue(&testJob{executed: &executed})
	}
	pool.Start()
	pool.Stop()
	pool.Stop()

	assert.Equal(t, int32(5), atomic.LoadInt32(&executed))
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}))
	pool.Enqueue(&testJob{executed: &executed})
	assert.Equal(t, int32(5), atomic.LoadInt32(&executed))

	checker.Check(0)
}
