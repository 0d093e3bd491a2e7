package request_models

type InvoiceRequest struct {
	ProjectID      uint          `json:"project_id" binding:"required,min=1"`
	QuoteID        *uint         `json:"quote_id" binding:"omitempty,min=1"`
	Number         string        `json:"number" binding:"omitempty,max=50"`
	Status         string        `json:"status" binding:"omitempty,oneof=draft issued sent paid"`
	IssueDate      string        `json:"issue_date" binding:"required,datetime=2006-01-02"`
	PaymentDueDate string        `json:"payment_due_date" binding:"required,datetime=2006-01-02"`
	PaymentType    string        `json:"payment_type" binding:"omitempty,oneof=bank_transfer check paypal other"`
	PaymentDate    *string       `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	FooterNote     *string       `json:"footer_note"`
	Lines          []LineRequest `json:"lines" binding:"omitempty,dive"`
}

type InvoiceLineRequest struct {
	InvoiceID uint `json:"invoice_id" binding:"required,min=1"`
	LineRequest
}
