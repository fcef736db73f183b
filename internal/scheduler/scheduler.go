// Package scheduler runs the periodic jobs of the server: the external
// posting sync and the expired-posting cleanup.
package scheduler

import (
	"context"
	"sync"
	"time"

	"jobboard/internal/pkg/logger"

	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named unit of periodic work. Its context is cancelled on Stop.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron *cron.Cron
	log  *zap.SugaredLogger

	mu   sync.Mutex
	jobs map[string]Job
	ctx  context.Context
	stop context.CancelFunc
}

func New(log *zap.SugaredLogger) *Scheduler {
	log = logger.Component(log, "scheduler")
	cl := cronLogger{log: log}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:  log,
		jobs: make(map[string]Job),
		ctx:  ctx,
		stop: cancel,
	}
}

// Add registers job under spec (standard 5-field cron or a descriptor such
// as "@every 6h"). An empty spec leaves the job registered but unscheduled so
// it can still be triggered by name.
func (s *Scheduler) Add(name, spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return errors.Newf("job %q already registered", name)
	}
	if spec != "" {
		if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
			return errors.Wrapf(err, "schedule %s with %q", name, spec)
		}
	}
	s.jobs[name] = job
	s.log.Infow("job registered", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infow("cron started", logger.FieldCount, len(s.cron.Entries()))
}

// Stop cancels running jobs and waits for them, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	s.stop()
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warnw("stop timed out with jobs still running")
	}
	s.log.Infow("cron stopped")
}

// Trigger runs a registered job once, outside the schedule.
func (s *Scheduler) Trigger(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return errors.Newf("unknown job %q", name)
	}
	go s.run(name, job)
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	start := time.Now()
	if err := job(s.ctx); err != nil {
		s.log.Errorw("job failed", "job", name, logger.FieldDurationMS, time.Since(start).Milliseconds(), logger.FieldError, err)
		return
	}
	s.log.Infow("job finished", "job", name, logger.FieldDurationMS, time.Since(start).Milliseconds())
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, logger.FieldError, err)...)
}
