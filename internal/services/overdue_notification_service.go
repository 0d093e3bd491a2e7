package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gorm.io/datatypes"

	"facturo/internal/metrics"
	"facturo/internal/models/db_models"
	"facturo/internal/repositories"
	"facturo/pkg/i18n"
	"facturo/pkg/utils"
)

// NotificationReport summarises one overdue sweep.
type NotificationReport struct {
	Date     string                `json:"date"`
	Accounts int                   `json:"accounts"`
	Notified int                   `json:"notified"`
	Skipped  int                   `json:"skipped"`
	Failed   int                   `json:"failed"`
	Failures []NotificationFailure `json:"failures,omitempty"`
}

type NotificationFailure struct {
	AccountID uint   `json:"account_id"`
	Email     string `json:"email"`
	Stage     string `json:"stage"`
	Error     string `json:"error"`
}

const (
	stageQuery = "query"
	stageMail  = "mail"
)

type OverdueNotificationServiceInterface interface {
	// Run emails every account holding invoices overdue on today. A failing
	// account is recorded and the sweep moves on.
	Run(ctx context.Context, today datatypes.Date) (*NotificationReport, error)
}

type OverdueNotificationSettings struct {
	AppBaseURL string
	Locale     language.Tag
}

type OverdueNotificationService struct {
	accountRepo repositories.AccountRepository
	invoiceRepo repositories.InvoiceRepository
	mail        IMailService
	metrics     *metrics.Metrics
	settings    OverdueNotificationSettings
	log         *zap.Logger
	now         func() time.Time
}

func NewOverdueNotificationService(
	accountRepo repositories.AccountRepository,
	invoiceRepo repositories.InvoiceRepository,
	mail IMailService,
	m *metrics.Metrics,
	settings OverdueNotificationSettings,
	log *zap.Logger,
) OverdueNotificationServiceInterface {
	return &OverdueNotificationService{
		accountRepo: accountRepo,
		invoiceRepo: invoiceRepo,
		mail:        mail,
		metrics:     m,
		settings:    settings,
		log:         log.Named("overdue"),
		now:         time.Now,
	}
}

func (s *OverdueNotificationService) Run(ctx context.Context, today datatypes.Date) (*NotificationReport, error) {
	start := s.now()
	report := &NotificationReport{Date: utils.FormatDate(today)}

	accounts, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.WrapDB("list accounts", err)
	}
	report.Accounts = len(accounts)
	s.log.Info("overdue sweep started", zap.String("date", report.Date), zap.Int("accounts", len(accounts)))

	mailCtx := i18n.WithLocale(ctx, s.settings.Locale)
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			s.finish(report, start)
			return report, err
		}
		s.notify(mailCtx, report, account, today)
	}

	s.finish(report, start)
	return report, nil
}

func (s *OverdueNotificationService) notify(ctx context.Context, report *NotificationReport, account db_models.Account, today datatypes.Date) {
	log := s.log.With(zap.Uint("account_id", account.ID))

	invoices, err := s.invoiceRepo.FindOverdueByAccount(ctx, account.ID, today)
	if err != nil {
		log.Error("overdue query failed", zap.Error(err))
		s.fail(report, account, stageQuery, err)
		return
	}
	if len(invoices) == 0 {
		report.Skipped++
		return
	}

	reminder := OverdueReminder{
		To:       account.Email,
		Name:     account.FullName(),
		Invoices: make([]OverdueInvoiceRow, 0, len(invoices)),
		Link:     s.invoicesLink(),
	}
	for _, inv := range invoices {
		reminder.Invoices = append(reminder.Invoices, OverdueInvoiceRow{
			Number:  invoiceLabel(inv),
			DueDate: utils.FormatDate(inv.PaymentDueDate),
			Total:   inv.Total().StringFixed(2) + " €",
		})
	}

	if err := s.mail.SendOverdueReminder(ctx, reminder); err != nil {
		log.Error("overdue reminder not sent", zap.Error(err))
		s.fail(report, account, stageMail, err)
		return
	}
	report.Notified++
	log.Info("overdue reminder sent", zap.Int("invoices", len(invoices)))
}

func (s *OverdueNotificationService) fail(report *NotificationReport, account db_models.Account, stage string, err error) {
	report.Failed++
	report.Failures = append(report.Failures, NotificationFailure{
		AccountID: account.ID,
		Email:     account.Email,
		Stage:     stage,
		Error:     err.Error(),
	})
}

func (s *OverdueNotificationService) finish(report *NotificationReport, start time.Time) {
	end := s.now()
	s.metrics.ObserveOverdueRun(report.Notified, report.Skipped, report.Failed, end.Sub(start), end)
	s.log.Info("overdue sweep finished",
		zap.String("date", report.Date),
		zap.Int("accounts", report.Accounts),
		zap.Int("notified", report.Notified),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
		zap.Duration("took", end.Sub(start)),
	)
}

func (s *OverdueNotificationService) invoicesLink() string {
	return fmt.Sprintf("%s/%s/invoices?overdue=true",
		strings.TrimRight(s.settings.AppBaseURL, "/"), i18n.Code(s.settings.Locale))
}

func invoiceLabel(inv db_models.Invoice) string {
	if inv.Number != "" {
		return inv.Number
	}
	return fmt.Sprintf("#%d", inv.ID)
}
