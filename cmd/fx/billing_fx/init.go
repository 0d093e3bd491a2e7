package billing_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"facturo/internal/config"
	"facturo/internal/metrics"
	"facturo/internal/repositories"
	"facturo/internal/services"
)

var Module = fx.Provide(
	services.NewQuoteService,
	services.NewInvoiceService,
	provideOverdueService,
)

func provideOverdueService(
	cfg *config.Config,
	locale language.Tag,
	accountRepo repositories.AccountRepository,
	invoiceRepo repositories.InvoiceRepository,
	mail services.IMailService,
	m *metrics.Metrics,
	log *zap.Logger,
) services.OverdueNotificationServiceInterface {
	settings := services.OverdueNotificationSettings{
		AppBaseURL: cfg.AppBaseURL,
		Locale:     locale,
	}
	return services.NewOverdueNotificationService(accountRepo, invoiceRepo, mail, m, settings, log)
}
