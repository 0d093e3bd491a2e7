package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"facturo/internal/config"
	"facturo/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, log *zap.Logger) (services.IMailService, error) {
	return services.NewSMTPMailService(services.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		FromName:   cfg.SMTPFromName,
		UseSSL:     cfg.SMTPUseSSL,
		RequireTLS: cfg.SMTPRequireTLS,
		AppName:    cfg.AppName,
	}, log)
}
