package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/internal/models/request_models"
	resp "facturo/internal/models/response_models"
	"facturo/internal/repositories"
	"facturo/pkg/i18n"
	"facturo/pkg/utils"
)

type InvoiceServiceInterface interface {
	List(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.InvoiceResponse], error)
	Get(ctx context.Context, scope utils.Scope, id uint) (*resp.InvoiceResponse, error)
	Create(ctx context.Context, scope utils.Scope, request request_models.InvoiceRequest) (*resp.InvoiceResponse, error)
	Update(ctx context.Context, scope utils.Scope, id uint, request request_models.InvoiceRequest) (*resp.InvoiceResponse, error)
	Delete(ctx context.Context, scope utils.Scope, id uint) error

	ListLines(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.LineResponse], error)
	GetLine(ctx context.Context, scope utils.Scope, id uint) (*resp.LineResponse, error)
	CreateLine(ctx context.Context, scope utils.Scope, request request_models.InvoiceLineRequest) (*resp.LineResponse, error)
	UpdateLine(ctx context.Context, scope utils.Scope, id uint, request request_models.InvoiceLineRequest) (*resp.LineResponse, error)
	DeleteLine(ctx context.Context, scope utils.Scope, id uint) error
}

type InvoiceService struct {
	invoiceRepo repositories.InvoiceRepository
	projectRepo repositories.ProjectRepository
	quoteRepo   repositories.QuoteRepository
	clock       utils.Clock
	log         *zap.Logger
}

func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepository,
	projectRepo repositories.ProjectRepository,
	quoteRepo repositories.QuoteRepository,
	clock utils.Clock,
	log *zap.Logger,
) InvoiceServiceInterface {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		projectRepo: projectRepo,
		quoteRepo:   quoteRepo,
		clock:       clock,
		log:         log.Named("invoices"),
	}
}

func (s *InvoiceService) List(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.InvoiceResponse], error) {
	today := s.clock.Today()
	invoices, total, err := s.invoiceRepo.List(ctx, scope, params, today)
	if err != nil {
		return nil, utils.WrapDB("list invoices", err)
	}
	page := utils.NewPage(resp.FromInvoices(invoices, today), params, total)
	return &page, nil
}

func (s *InvoiceService) Get(ctx context.Context, scope utils.Scope, id uint) (*resp.InvoiceResponse, error) {
	invoice, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	out := resp.FromInvoice(*invoice, s.clock.Today())
	return &out, nil
}

func (s *InvoiceService) Create(ctx context.Context, scope utils.Scope, request request_models.InvoiceRequest) (*resp.InvoiceResponse, error) {
	invoice := &db_models.Invoice{
		Status:      db_models.InvoiceDraft,
		PaymentType: db_models.PaymentBankTransfer,
	}
	if err := s.apply(ctx, scope, invoice, request); err != nil {
		return nil, err
	}
	invoice.Lines = invoiceLinesFrom(request.Lines)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewValidationError("number", i18n.KeyNumberTaken)
		}
		return nil, utils.WrapDB("create invoice", err)
	}
	out := resp.FromInvoice(*invoice, s.clock.Today())
	return &out, nil
}

func (s *InvoiceService) Update(ctx context.Context, scope utils.Scope, id uint, request request_models.InvoiceRequest) (*resp.InvoiceResponse, error) {
	invoice, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, scope, invoice, request); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewValidationError("number", i18n.KeyNumberTaken)
		}
		return nil, storeError("update invoice", err)
	}
	out := resp.FromInvoice(*invoice, s.clock.Today())
	return &out, nil
}

func (s *InvoiceService) Delete(ctx context.Context, scope utils.Scope, id uint) error {
	if _, err := s.find(ctx, scope, id); err != nil {
		return err
	}
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return storeError("delete invoice", err)
	}
	return nil
}

func (s *InvoiceService) find(ctx context.Context, scope utils.Scope, id uint) (*db_models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, utils.WrapDB("find invoice", err)
	}
	if invoice == nil {
		return nil, utils.ErrNotFound
	}
	return invoice, nil
}

// apply validates and copies the request. A paid invoice without a payment
// date is stamped with today.
func (s *InvoiceService) apply(ctx context.Context, scope utils.Scope, invoice *db_models.Invoice, r request_models.InvoiceRequest) error {
	verr := &utils.ValidationError{}

	project, err := s.projectRepo.FindByID(ctx, scope, r.ProjectID)
	if err != nil {
		return utils.WrapDB("find project", err)
	}
	if project == nil {
		verr.Add("project_id", i18n.KeyParentNotFound)
	}

	if r.QuoteID != nil {
		quote, err := s.quoteRepo.FindByID(ctx, scope, *r.QuoteID)
		if err != nil {
			return utils.WrapDB("find quote", err)
		}
		if quote == nil || (project != nil && quote.ProjectID != project.ID) {
			verr.Add("quote_id", i18n.KeyParentNotFound)
		}
	}

	dates := &utils.ValidationError{}
	issue := parseDate(dates, "issue_date", r.IssueDate)
	due := parseDate(dates, "payment_due_date", r.PaymentDueDate)
	if !dates.HasErrors() && utils.DateBefore(due, issue) {
		dates.Add("payment_due_date", i18n.KeyDueBeforeIssue)
	}
	var paymentDate *datatypes.Date
	if r.PaymentDate != nil {
		d := parseDate(dates, "payment_date", *r.PaymentDate)
		paymentDate = &d
	}
	verr.Merge(dates)

	if r.Number != "" {
		taken, err := s.invoiceRepo.NumberTaken(ctx, r.Number, invoice.ID)
		if err != nil {
			return utils.WrapDB("check number", err)
		}
		if taken {
			verr.Add("number", i18n.KeyNumberTaken)
		}
	}

	if err := verr.OrNil(); err != nil {
		return err
	}

	invoice.ProjectID = project.ID
	invoice.QuoteID = r.QuoteID
	if r.Number != "" {
		invoice.Number = r.Number
	}
	invoice.IssueDate = issue
	invoice.PaymentDueDate = due
	if r.Status != "" {
		invoice.Status = db_models.InvoiceStatus(r.Status)
	}
	if r.PaymentType != "" {
		invoice.PaymentType = db_models.PaymentType(r.PaymentType)
	}
	invoice.FooterNote = r.FooterNote

	invoice.PaymentDate = paymentDate
	if invoice.Status == db_models.InvoicePaid && invoice.PaymentDate == nil {
		today := s.clock.Today()
		invoice.PaymentDate = &today
	}
	return nil
}

// ------------------- Lines -------------------

func (s *InvoiceService) ListLines(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.LineResponse], error) {
	lines, total, err := s.invoiceRepo.ListLines(ctx, scope, params)
	if err != nil {
		return nil, utils.WrapDB("list invoice lines", err)
	}
	page := utils.NewPage(resp.FromInvoiceLines(lines), params, total)
	return &page, nil
}

func (s *InvoiceService) GetLine(ctx context.Context, scope utils.Scope, id uint) (*resp.LineResponse, error) {
	line, err := s.findLine(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	out := resp.FromInvoiceLine(*line)
	return &out, nil
}

func (s *InvoiceService) CreateLine(ctx context.Context, scope utils.Scope, request request_models.InvoiceLineRequest) (*resp.LineResponse, error) {
	line := &db_models.InvoiceLine{}
	if err := s.applyLine(ctx, scope, line, request); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.CreateLine(ctx, line); err != nil {
		return nil, utils.WrapDB("create invoice line", err)
	}
	out := resp.FromInvoiceLine(*line)
	return &out, nil
}

func (s *InvoiceService) UpdateLine(ctx context.Context, scope utils.Scope, id uint, request request_models.InvoiceLineRequest) (*resp.LineResponse, error) {
	line, err := s.findLine(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyLine(ctx, scope, line, request); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateLine(ctx, line); err != nil {
		return nil, storeError("update invoice line", err)
	}
	out := resp.FromInvoiceLine(*line)
	return &out, nil
}

func (s *InvoiceService) DeleteLine(ctx context.Context, scope utils.Scope, id uint) error {
	if _, err := s.findLine(ctx, scope, id); err != nil {
		return err
	}
	if err := s.invoiceRepo.DeleteLine(ctx, id); err != nil {
		return storeError("delete invoice line", err)
	}
	return nil
}

func (s *InvoiceService) findLine(ctx context.Context, scope utils.Scope, id uint) (*db_models.InvoiceLine, error) {
	line, err := s.invoiceRepo.FindLine(ctx, scope, id)
	if err != nil {
		return nil, utils.WrapDB("find invoice line", err)
	}
	if line == nil {
		return nil, utils.ErrNotFound
	}
	return line, nil
}

func (s *InvoiceService) applyLine(ctx context.Context, scope utils.Scope, line *db_models.InvoiceLine, r request_models.InvoiceLineRequest) error {
	if r.InvoiceID != line.InvoiceID {
		invoice, err := s.invoiceRepo.FindByID(ctx, scope, r.InvoiceID)
		if err != nil {
			return utils.WrapDB("find invoice", err)
		}
		if invoice == nil {
			return utils.NewValidationError("invoice_id", i18n.KeyParentNotFound)
		}
		line.InvoiceID = invoice.ID
	}
	line.Description = r.Description
	line.UnitPrice = *r.UnitPrice
	line.Quantity = r.Quantity
	return nil
}
