package scheduler_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"facturo/internal/config"
	"facturo/internal/repositories"
	"facturo/internal/scheduler"
	"facturo/internal/services"
	"facturo/pkg/utils"
)

const jobTimeout = 30 * time.Minute

var Module = fx.Options(
	fx.Provide(provideScheduler),
	fx.Invoke(startScheduler),
)

func provideScheduler(
	cfg *config.Config,
	overdue services.OverdueNotificationServiceInterface,
	resets repositories.PasswordResetRepository,
	clock utils.Clock,
	log *zap.Logger,
) (*scheduler.Scheduler, error) {
	s := scheduler.New(clock, jobTimeout, log)
	if err := s.AddOverdueSweep(cfg.OverdueCron, overdue); err != nil {
		return nil, err
	}
	if err := s.AddTokenPurge(cfg.PurgeCron, resets); err != nil {
		return nil, err
	}
	return s, nil
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
