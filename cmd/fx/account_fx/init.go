package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"facturo/internal/config"
	"facturo/internal/repositories"
	"facturo/internal/services"
	mem "facturo/pkg/memcache"
	"facturo/pkg/utils"
)

var Module = fx.Provide(
	services.NewAccountService,
	provideAuthService,
)

func provideAuthService(
	cfg *config.Config,
	accountRepo repositories.AccountRepository,
	resetRepo repositories.PasswordResetRepository,
	tokens *utils.TokenManager,
	revoked mem.RevocationStore,
	mail services.IMailService,
	clock utils.Clock,
	log *zap.Logger,
) services.AuthServiceInterface {
	settings := services.AuthSettings{
		AppBaseURL:    cfg.AppBaseURL,
		ResetTokenTTL: cfg.ResetTokenTTL,
	}
	return services.NewAuthService(accountRepo, resetRepo, tokens, revoked, mail, settings, clock, log)
}
