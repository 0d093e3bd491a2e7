package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"facturo/internal/config"
	"facturo/internal/infra"
	"facturo/internal/metrics"
	"facturo/pkg/i18n"
	"facturo/pkg/utils"
)

// Module provides the settings shared by every entrypoint.
var Module = fx.Options(
	fx.Provide(
		config.Load,
		provideLogger,
		provideClock,
		provideDefaultLocale,
		provideTokenManager,
		metrics.New,
	),
)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := infra.NewLogger(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}

func provideClock(cfg *config.Config) utils.Clock {
	return utils.NewClock(utils.LoadLocation(cfg.Timezone))
}

func provideDefaultLocale(cfg *config.Config) language.Tag {
	return i18n.ParseDefault(cfg.DefaultLocale)
}

func provideTokenManager(cfg *config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
}
