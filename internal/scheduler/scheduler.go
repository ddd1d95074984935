// Package scheduler runs worker jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/osse101/BoxLedger_Go/internal/logger"
	"github.com/osse101/BoxLedger_Go/internal/worker"
)

const (
	ErrMsgInvalidSchedule = "invalid schedule"
	LogMsgJobSkipped      = "Scheduled job skipped, worker queue full"
	LogMsgJobScheduled    = "Job scheduled"
)

// Scheduler manages scheduled jobs. Each tick hands the job to the worker pool;
// a tick is skipped when the queue is full.
type Scheduler struct {
	workerPool *worker.Pool
	cron       *cron.Cron
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		cron:       cron.New(cron.WithSeconds()),
	}
}

// Schedule registers job under spec. Specs take a leading seconds field
// ("*/30 * * * * *") or a descriptor such as "@every 30s".
func (s *Scheduler) Schedule(name, spec string, job worker.Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if !s.workerPool.TryEnqueue(job) {
			logger.FromContext(context.Background()).Warn(LogMsgJobSkipped, "job", name)
		}
	})
	if err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgInvalidSchedule, spec, err)
	}
	logger.FromContext(context.Background()).Info(LogMsgJobScheduled, "job", name, "schedule", spec)
	return nil
}

// Start starts the cron loop
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running ticks to return
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
