package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BoxLedger_Go/internal/worker"
)

// countingSweep stands in for the outbox sweep and counts its runs
type countingSweep struct {
	runs atomic.Int32
	ran  chan struct{}
}

func newCountingSweep() *countingSweep {
	return &countingSweep{ran: make(chan struct{}, 16)}
}

func (c *countingSweep) Process(context.Context) error {
	c.runs.Add(1)
	select {
	case c.ran <- struct{}{}:
	default:
	}
	return nil
}

func waitRuns(t *testing.T, c *countingSweep, n int, within time.Duration) {
	t.Helper()
	deadline := time.After(within)
	for i := 0; i < n; i++ {
		select {
		case <-c.ran:
		case <-deadline:
			t.Fatalf("sweep ran %d times, want %d", c.runs.Load(), n)
		}
	}
}

func TestScheduler_RunsSweepEverySecond(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	sweep := newCountingSweep()
	require.NoError(t, sched.Schedule("outbox-sweep", "* * * * * *", sweep))

	sched.Start()
	waitRuns(t, sweep, 2, 5*time.Second)
	sched.Stop()

	assert.GreaterOrEqual(t, sweep.runs.Load(), int32(2))
}

func TestScheduler_DescriptorSpec(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	sweep := newCountingSweep()
	require.NoError(t, sched.Schedule("outbox-sweep", "@every 1s", sweep))

	sched.Start()
	defer sched.Stop()
	waitRuns(t, sweep, 1, 3*time.Second)
}

func TestScheduler_SkipsTicksWhileQueueIsFull(t *testing.T) {
	// workers never start, so the single queue slot stays occupied
	pool := worker.NewPool(1, 1)
	sched := New(pool)
	sweep := newCountingSweep()
	require.NoError(t, sched.Schedule("outbox-sweep", "* * * * * *", sweep))

	sched.Start()
	time.Sleep(2500 * time.Millisecond)
	sched.Stop()

	assert.Zero(t, sweep.runs.Load())

	// starting the pool drains the one queued tick and nothing else
	pool.Start()
	pool.Stop()
	assert.Equal(t, int32(1), sweep.runs.Load())
}

func TestScheduler_InvalidSpec(t *testing.T) {
	sched := New(worker.NewPool(1, 1))

	err := sched.Schedule("broken", "every tuesday", newCountingSweep())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidSchedule)

	// five-field specs need the leading seconds field
	assert.Error(t, sched.Schedule("five-field", "*/5 * * * *", newCountingSweep()))
}
