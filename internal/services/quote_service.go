package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/internal/models/request_models"
	resp "facturo/internal/models/response_models"
	"facturo/internal/repositories"
	"facturo/pkg/i18n"
	"facturo/pkg/utils"
)

// InvoicePaymentDays is the due delay given to invoices converted from a quote.
const InvoicePaymentDays = 30

type QuoteServiceInterface interface {
	List(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.QuoteResponse], error)
	Get(ctx context.Context, scope utils.Scope, id uint) (*resp.QuoteResponse, error)
	Create(ctx context.Context, scope utils.Scope, request request_models.QuoteRequest) (*resp.QuoteResponse, error)
	Update(ctx context.Context, scope utils.Scope, id uint, request request_models.QuoteRequest) (*resp.QuoteResponse, error)
	Delete(ctx context.Context, scope utils.Scope, id uint) error
	ConvertToInvoice(ctx context.Context, scope utils.Scope, id uint) (*resp.InvoiceResponse, error)

	ListLines(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.LineResponse], error)
	GetLine(ctx context.Context, scope utils.Scope, id uint) (*resp.LineResponse, error)
	CreateLine(ctx context.Context, scope utils.Scope, request request_models.QuoteLineRequest) (*resp.LineResponse, error)
	UpdateLine(ctx context.Context, scope utils.Scope, id uint, request request_models.QuoteLineRequest) (*resp.LineResponse, error)
	DeleteLine(ctx context.Context, scope utils.Scope, id uint) error
}

type QuoteService struct {
	quoteRepo   repositories.QuoteRepository
	projectRepo repositories.ProjectRepository
	invoiceRepo repositories.InvoiceRepository
	clock       utils.Clock
	log         *zap.Logger
}

func NewQuoteService(
	quoteRepo repositories.QuoteRepository,
	projectRepo repositories.ProjectRepository,
	invoiceRepo repositories.InvoiceRepository,
	clock utils.Clock,
	log *zap.Logger,
) QuoteServiceInterface {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		projectRepo: projectRepo,
		invoiceRepo: invoiceRepo,
		clock:       clock,
		log:         log.Named("quotes"),
	}
}

func (s *QuoteService) List(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.QuoteResponse], error) {
	quotes, total, err := s.quoteRepo.List(ctx, scope, params)
	if err != nil {
		return nil, utils.WrapDB("list quotes", err)
	}
	page := utils.NewPage(resp.FromQuotes(quotes), params, total)
	return &page, nil
}

func (s *QuoteService) Get(ctx context.Context, scope utils.Scope, id uint) (*resp.QuoteResponse, error) {
	quote, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	out := resp.FromQuote(*quote)
	return &out, nil
}

// Create defaults the expiry to issue date + QuoteValidityDays and moves a
// prospect project to quote_sent.
func (s *QuoteService) Create(ctx context.Context, scope utils.Scope, request request_models.QuoteRequest) (*resp.QuoteResponse, error) {
	quote := &db_models.Quote{Status: db_models.QuoteSent}
	project, err := s.apply(ctx, scope, quote, request)
	if err != nil {
		return nil, err
	}
	quote.Lines = quoteLinesFrom(request.Lines)

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewValidationError("reference", i18n.KeyReferenceTaken)
		}
		return nil, utils.WrapDB("create quote", err)
	}

	next := db_models.ProjectQuoteSent
	if quote.Status == db_models.QuoteAccepted {
		next = db_models.ProjectQuoteAccepted
	}
	if project.Status == db_models.ProjectProspect || next == db_models.ProjectQuoteAccepted {
		s.advanceProject(ctx, project, next)
	}

	out := resp.FromQuote(*quote)
	return &out, nil
}

func (s *QuoteService) Update(ctx context.Context, scope utils.Scope, id uint, request request_models.QuoteRequest) (*resp.QuoteResponse, error) {
	quote, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	previous := quote.Status

	project, err := s.apply(ctx, scope, quote, request)
	if err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewValidationError("reference", i18n.KeyReferenceTaken)
		}
		return nil, storeError("update quote", err)
	}

	if quote.Status == db_models.QuoteAccepted && previous != db_models.QuoteAccepted {
		s.advanceProject(ctx, project, db_models.ProjectQuoteAccepted)
	}

	out := resp.FromQuote(*quote)
	return &out, nil
}

func (s *QuoteService) Delete(ctx context.Context, scope utils.Scope, id uint) error {
	if _, err := s.find(ctx, scope, id); err != nil {
		return err
	}
	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		return storeError("delete quote", err)
	}
	return nil
}

// ConvertToInvoice creates a draft invoice from an accepted quote, copying
// every line.
func (s *QuoteService) ConvertToInvoice(ctx context.Context, scope utils.Scope, id uint) (*resp.InvoiceResponse, error) {
	quote, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if quote.Status != db_models.QuoteAccepted {
		return nil, utils.NewValidationError("status", i18n.KeyQuoteNotAccepted)
	}

	today := s.clock.Today()
	quoteID := quote.ID
	invoice := &db_models.Invoice{
		ProjectID:      quote.ProjectID,
		QuoteID:        &quoteID,
		Status:         db_models.InvoiceDraft,
		IssueDate:      today,
		PaymentDueDate: utils.AddDays(today, InvoicePaymentDays),
		PaymentType:    db_models.PaymentBankTransfer,
	}
	for _, l := range quote.Lines {
		invoice.Lines = append(invoice.Lines, db_models.InvoiceLine{
			Description: l.Description,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, utils.WrapDB("create invoice", err)
	}
	s.log.Info("quote converted", zap.Uint("quote_id", quote.ID), zap.Uint("invoice_id", invoice.ID))

	out := resp.FromInvoice(*invoice, today)
	return &out, nil
}

func (s *QuoteService) find(ctx context.Context, scope utils.Scope, id uint) (*db_models.Quote, error) {
	quote, err := s.quoteRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, utils.WrapDB("find quote", err)
	}
	if quote == nil {
		return nil, utils.ErrNotFound
	}
	return quote, nil
}

// apply validates and copies the request onto quote and returns its project.
func (s *QuoteService) apply(ctx context.Context, scope utils.Scope, quote *db_models.Quote, r request_models.QuoteRequest) (*db_models.Project, error) {
	verr := &utils.ValidationError{}

	project, err := s.projectRepo.FindByID(ctx, scope, r.ProjectID)
	if err != nil {
		return nil, utils.WrapDB("find project", err)
	}
	if project == nil {
		verr.Add("project_id", i18n.KeyParentNotFound)
	}

	dates := &utils.ValidationError{}
	issue := parseDate(dates, "issue_date", r.IssueDate)
	expiry := utils.AddDays(issue, db_models.QuoteValidityDays)
	if r.ExpiryDate != "" {
		expiry = parseDate(dates, "expiry_date", r.ExpiryDate)
	}
	if !dates.HasErrors() && !utils.DateAfter(expiry, issue) {
		dates.Add("expiry_date", i18n.KeyExpiryBeforeIssue)
	}
	verr.Merge(dates)

	taken, err := s.quoteRepo.ReferenceTaken(ctx, r.Reference, quote.ID)
	if err != nil {
		return nil, utils.WrapDB("check reference", err)
	}
	if taken {
		verr.Add("reference", i18n.KeyReferenceTaken)
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	quote.ProjectID = project.ID
	quote.Reference = r.Reference
	quote.IssueDate = issue
	quote.ExpiryDate = expiry
	quote.Note = r.Note
	if r.Status != "" {
		quote.Status = db_models.QuoteStatus(r.Status)
	}
	return project, nil
}

// advanceProject is best effort: the quote is already stored.
func (s *QuoteService) advanceProject(ctx context.Context, project *db_models.Project, status db_models.ProjectStatus) {
	if project.Status == status {
		return
	}
	if err := s.projectRepo.UpdateStatus(ctx, project.ID, status); err != nil {
		s.log.Error("project status not updated",
			zap.Uint("project_id", project.ID), zap.String("status", string(status)), zap.Error(err))
		return
	}
	project.Status = status
}

// ------------------- Lines -------------------

func (s *QuoteService) ListLines(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.LineResponse], error) {
	lines, total, err := s.quoteRepo.ListLines(ctx, scope, params)
	if err != nil {
		return nil, utils.WrapDB("list quote lines", err)
	}
	page := utils.NewPage(resp.FromQuoteLines(lines), params, total)
	return &page, nil
}

func (s *QuoteService) GetLine(ctx context.Context, scope utils.Scope, id uint) (*resp.LineResponse, error) {
	line, err := s.findLine(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	out := resp.FromQuoteLine(*line)
	return &out, nil
}

func (s *QuoteService) CreateLine(ctx context.Context, scope utils.Scope, request request_models.QuoteLineRequest) (*resp.LineResponse, error) {
	line := &db_models.QuoteLine{}
	if err := s.applyLine(ctx, scope, line, request); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.CreateLine(ctx, line); err != nil {
		return nil, utils.WrapDB("create quote line", err)
	}
	out := resp.FromQuoteLine(*line)
	return &out, nil
}

func (s *QuoteService) UpdateLine(ctx context.Context, scope utils.Scope, id uint, request request_models.QuoteLineRequest) (*resp.LineResponse, error) {
	line, err := s.findLine(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyLine(ctx, scope, line, request); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.UpdateLine(ctx, line); err != nil {
		return nil, storeError("update quote line", err)
	}
	out := resp.FromQuoteLine(*line)
	return &out, nil
}

func (s *QuoteService) DeleteLine(ctx context.Context, scope utils.Scope, id uint) error {
	if _, err := s.findLine(ctx, scope, id); err != nil {
		return err
	}
	if err := s.quoteRepo.DeleteLine(ctx, id); err != nil {
		return storeError("delete quote line", err)
	}
	return nil
}

func (s *QuoteService) findLine(ctx context.Context, scope utils.Scope, id uint) (*db_models.QuoteLine, error) {
	line, err := s.quoteRepo.FindLine(ctx, scope, id)
	if err != nil {
		return nil, utils.WrapDB("find quote line", err)
	}
	if line == nil {
		return nil, utils.ErrNotFound
	}
	return line, nil
}

func (s *QuoteService) applyLine(ctx context.Context, scope utils.Scope, line *db_models.QuoteLine, r request_models.QuoteLineRequest) error {
	if r.QuoteID != line.QuoteID {
		quote, err := s.quoteRepo.FindByID(ctx, scope, r.QuoteID)
		if err != nil {
			return utils.WrapDB("find quote", err)
		}
		if quote == nil {
			return utils.NewValidationError("quote_id", i18n.KeyParentNotFound)
		}
		line.QuoteID = quote.ID
	}
	line.Description = r.Description
	line.UnitPrice = *r.UnitPrice
	line.Quantity = r.Quantity
	return nil
}
