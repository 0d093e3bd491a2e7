package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"facturo/internal/config"
	"facturo/internal/infra"
	"facturo/internal/repositories"
)

var Module = fx.Provide(
	provideDB,
	repositories.NewAccountRepository,
	repositories.NewPasswordResetRepository,
	repositories.NewClientRepository,
	repositories.NewProjectRepository,
	repositories.NewQuoteRepository,
	repositories.NewInvoiceRepository,
	repositories.NewDashboardRepository,
)

func provideDB(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.ClosePostgresql(db, log)
			return nil
		},
	})
	return db, nil
}
