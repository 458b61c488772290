// Package jobs runs the frontend's periodic maintenance work.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	jobmetrics "github.com/apollo-healthcare/apollo-web/internal/jobs"
)

// Job names.
const (
	JobListingSweep = "listing:sweep"
)

// CronRegistration wires a cron expression to a named job.
type CronRegistration struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler wraps robfig/cron.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
	jobs    []CronRegistration
}

// NewScheduler validates and registers jobs. Nothing runs until Run.
// metrics may be nil.
func NewScheduler(logger *slog.Logger, metrics *jobmetrics.Metrics, jobs ...CronRegistration) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger:  logger,
		metrics: metrics,
	}
	for _, job := range jobs {
		if job.Spec == "" || job.Run == nil {
			return nil, fmt.Errorf("jobs: %s: spec and func required", job.Name)
		}
		s.jobs = append(s.jobs, job)
	}
	return s, nil
}

// Run starts the scheduler and blocks until ctx is cancelled. Jobs receive
// ctx, so in-flight work observes shutdown.
func (s *Scheduler) Run(ctx context.Context) error {
	for _, job := range s.jobs {
		job := job
		if _, err := s.cron.AddFunc(job.Spec, func() {
			tracker := s.metrics.Track(job.Name)
			if err := tracker.End(job.Run(ctx)); err != nil {
				s.logger.Error("job failed", slog.String("job", job.Name), slog.Any("error", err))
			}
		}); err != nil {
			return fmt.Errorf("jobs: register %s: %w", job.Name, err)
		}
	}
	s.cron.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.jobs)))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

// Entries reports the number of registered cron entries.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Sweeper evicts idle state and reports how much it removed.
type Sweeper interface {
	Sweep() int
}

// SweepRegistration builds the job evicting idle listings.
func SweepRegistration(spec string, sweeper Sweeper, metrics *jobmetrics.Metrics) CronRegistration {
	return CronRegistration{
		Name: JobListingSweep,
		Spec: spec,
		Run: func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			metrics.AddEvicted(sweeper.Sweep())
			return nil
		},
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
