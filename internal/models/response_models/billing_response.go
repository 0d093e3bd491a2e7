package response_models

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"facturo/internal/models/db_models"
	"facturo/pkg/utils"
)

// LineResponse serves both quote and invoice lines; exactly one of the
// parent ids is set.
type LineResponse struct {
	ID          uint            `json:"id"`
	QuoteID     uint            `json:"quote_id,omitempty"`
	InvoiceID   uint            `json:"invoice_id,omitempty"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

type QuoteResponse struct {
	ID         uint            `json:"id"`
	ProjectID  uint            `json:"project_id"`
	Reference  string          `json:"reference"`
	Status     string          `json:"status"`
	IssueDate  string          `json:"issue_date"`
	ExpiryDate string          `json:"expiry_date"`
	Note       string          `json:"note"`
	Lines      []LineResponse  `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type InvoiceResponse struct {
	ID             uint            `json:"id"`
	ProjectID      uint            `json:"project_id"`
	QuoteID        *uint           `json:"quote_id"`
	Number         string          `json:"number"`
	Status         string          `json:"status"`
	IssueDate      string          `json:"issue_date"`
	PaymentDueDate string          `json:"payment_due_date"`
	PaymentType    string          `json:"payment_type"`
	PaymentDate    *string         `json:"payment_date"`
	FooterNote     *string         `json:"footer_note"`
	Overdue        bool            `json:"overdue"`
	Lines          []LineResponse  `json:"lines"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func FromQuoteLine(l db_models.QuoteLine) LineResponse {
	return LineResponse{
		ID:          l.ID,
		QuoteID:     l.QuoteID,
		Description: l.Description,
		UnitPrice:   l.UnitPrice,
		Quantity:    l.Quantity,
		Total:       l.Total(),
	}
}

func FromQuoteLines(lines []db_models.QuoteLine) []LineResponse {
	return lo.Map(lines, func(l db_models.QuoteLine, _ int) LineResponse { return FromQuoteLine(l) })
}

func FromInvoiceLine(l db_models.InvoiceLine) LineResponse {
	return LineResponse{
		ID:          l.ID,
		InvoiceID:   l.InvoiceID,
		Description: l.Description,
		UnitPrice:   l.UnitPrice,
		Quantity:    l.Quantity,
		Total:       l.Total(),
	}
}

func FromInvoiceLines(lines []db_models.InvoiceLine) []LineResponse {
	return lo.Map(lines, func(l db_models.InvoiceLine, _ int) LineResponse { return FromInvoiceLine(l) })
}

func FromQuote(q db_models.Quote) QuoteResponse {
	return QuoteResponse{
		ID:         q.ID,
		ProjectID:  q.ProjectID,
		Reference:  q.Reference,
		Status:     string(q.Status),
		IssueDate:  utils.FormatDate(q.IssueDate),
		ExpiryDate: utils.FormatDate(q.ExpiryDate),
		Note:       q.Note,
		Lines:      FromQuoteLines(q.Lines),
		Total:      q.Total(),
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

func FromQuotes(quotes []db_models.Quote) []QuoteResponse {
	return lo.Map(quotes, func(q db_models.Quote, _ int) QuoteResponse { return FromQuote(q) })
}

// FromInvoice needs today to report the overdue flag.
func FromInvoice(i db_models.Invoice, today datatypes.Date) InvoiceResponse {
	return InvoiceResponse{
		ID:             i.ID,
		ProjectID:      i.ProjectID,
		QuoteID:        i.QuoteID,
		Number:         i.Number,
		Status:         string(i.Status),
		IssueDate:      utils.FormatDate(i.IssueDate),
		PaymentDueDate: utils.FormatDate(i.PaymentDueDate),
		PaymentType:    string(i.PaymentType),
		PaymentDate:    utils.FormatDatePtr(i.PaymentDate),
		FooterNote:     i.FooterNote,
		Overdue:        i.IsOverdue(today),
		Lines:          FromInvoiceLines(i.Lines),
		Total:          i.Total(),
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func FromInvoices(invoices []db_models.Invoice, today datatypes.Date) []InvoiceResponse {
	return lo.Map(invoices, func(i db_models.Invoice, _ int) InvoiceResponse { return FromInvoice(i, today) })
}
