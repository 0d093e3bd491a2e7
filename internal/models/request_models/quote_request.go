package request_models

import "github.com/shopspring/decimal"

// Dates are YYYY-MM-DD.
type QuoteRequest struct {
	ProjectID  uint          `json:"project_id" binding:"required,min=1"`
	Reference  string        `json:"reference" binding:"required,max=50"`
	Status     string        `json:"status" binding:"omitempty,oneof=sent accepted rejected"`
	IssueDate  string        `json:"issue_date" binding:"required,datetime=2006-01-02"`
	ExpiryDate string        `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	Note       string        `json:"note"`
	Lines      []LineRequest `json:"lines" binding:"omitempty,dive"`
}

type LineRequest struct {
	Description string           `json:"description" binding:"required"`
	UnitPrice   *decimal.Decimal `json:"unit_price" binding:"required,money"`
	Quantity    int              `json:"quantity" binding:"required,min=1"`
}

type QuoteLineRequest struct {
	QuoteID uint `json:"quote_id" binding:"required,min=1"`
	LineRequest
}
