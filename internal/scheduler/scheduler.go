// Package scheduler runs the generate-then-publish job on a cron schedule,
// replacing an external CI cron job.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSpec regenerates and publishes once a week.
const DefaultSpec = "@weekly"

// Job is one scheduled generate-and-publish run.
type Job func(ctx context.Context) error

// Scheduler runs a Job on a cron expression until its context is cancelled.
type Scheduler struct {
	cron *cron.Cron
	spec string
	job  Job
	log  *zap.Logger
}

// New creates a Scheduler. spec accepts standard cron expressions and the
// @-descriptors (@weekly, @daily, ...).
func New(spec string, job Job, log *zap.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	return &Scheduler{
		cron: cron.New(),
		spec: spec,
		job:  job,
		log:  log,
	}
}

// Run registers the job, starts the cron loop and blocks until the context
// is cancelled. Job failures are logged and the schedule keeps running; the
// next tick is the retry.
func (s *Scheduler) Run(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.log.Info("scheduled run starting", zap.String("spec", s.spec))
		if err := s.job(ctx); err != nil {
			s.log.Error("scheduled run failed", zap.Error(err))
			return
		}
		s.log.Info("scheduled run complete")
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler started", zap.String("spec", s.spec))

	<-ctx.Done()

	// Let an in-flight run finish before returning
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()

	s.log.Info("scheduler stopped")
	return nil
}
