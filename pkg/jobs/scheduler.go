package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler enqueues jobs on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	queue  *Queue
	logger *zap.Logger
}

// NewScheduler builds a scheduler feeding the given queue. Overlapping runs of
// the same entry are skipped.
func NewScheduler(queue *Queue, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		queue:  queue,
		logger: logger,
	}
}

// Every registers a cron spec that enqueues a job built by makeJob.
func (s *Scheduler) Every(spec string, makeJob func() Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		job := makeJob()
		id, err := s.queue.Enqueue(job)
		if err != nil {
			s.logger.Warn("scheduled job not enqueued", zap.String("type", job.Type), zap.Error(err))
			return
		}
		s.logger.Info("scheduled job enqueued", zap.String("type", job.Type), zap.String("job_id", id))
	})
	if err != nil {
		return fmt.Errorf("register cron %q: %w", spec, err)
	}
	return nil
}

// Start runs the cron loop in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and waits for running entries up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
