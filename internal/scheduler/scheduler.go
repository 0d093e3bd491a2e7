package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"facturo/internal/services"
	"facturo/pkg/utils"
)

const (
	JobOverdueSweep = "overdue_sweep"
	JobTokenPurge   = "reset_token_purge"
)

// TokenPurger drops password reset tokens that can no longer be used.
type TokenPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler runs the background jobs on cron schedules evaluated in the
// business timezone.
type Scheduler struct {
	cron    *cron.Cron
	entries map[string]cron.EntryID
	clock   utils.Clock
	timeout time.Duration
	log     *zap.Logger
}

func New(clock utils.Clock, timeout time.Duration, log *zap.Logger) *Scheduler {
	log = log.Named("scheduler")
	clog := cronLogger{log.Sugar()}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(clock.Location()),
			cron.WithLogger(clog),
			cron.WithChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)),
		),
		entries: make(map[string]cron.EntryID),
		clock:   clock,
		timeout: timeout,
		log:     log,
	}
}

// AddOverdueSweep emails overdue reminders for the business day of each run.
func (s *Scheduler) AddOverdueSweep(spec string, service services.OverdueNotificationServiceInterface) error {
	return s.add(JobOverdueSweep, spec, func(ctx context.Context) {
		report, err := service.Run(ctx, s.clock.Today())
		if err != nil {
			s.log.Error("overdue sweep failed", zap.Error(err))
			return
		}
		s.log.Info("overdue sweep done",
			zap.String("date", report.Date),
			zap.Int("notified", report.Notified),
			zap.Int("failed", report.Failed),
		)
	})
}

func (s *Scheduler) AddTokenPurge(spec string, purger TokenPurger) error {
	return s.add(JobTokenPurge, spec, func(ctx context.Context) {
		n, err := purger.DeleteExpired(ctx, s.clock.Now())
		if err != nil {
			s.log.Error("reset token purge failed", zap.Error(err))
			return
		}
		s.log.Info("reset tokens purged", zap.Int64("count", n))
	})
}

func (s *Scheduler) add(name, spec string, run func(ctx context.Context)) error {
	id, err := s.cron.AddFunc(spec, func() {
		ctx := context.Background()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		run(ctx)
	})
	if err != nil {
		return fmt.Errorf("%s schedule %q: %w", name, spec, err)
	}
	s.entries[name] = id
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for name := range s.entries {
		s.log.Info("job scheduled", zap.String("job", name), zap.Time("next", s.Next(name)))
	}
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next is the zero time for unknown jobs and until the scheduler is started.
func (s *Scheduler) Next(name string) time.Time {
	id, ok := s.entries[name]
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// run executes a registered job immediately, outside the schedule.
func (s *Scheduler) run(name string) {
	if id, ok := s.entries[name]; ok {
		s.cron.Entry(id).WrappedJob.Run()
	}
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
