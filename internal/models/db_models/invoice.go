package db_models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "draft"
	InvoiceIssued InvoiceStatus = "issued"
	InvoiceSent   InvoiceStatus = "sent"
	InvoicePaid   InvoiceStatus = "paid"
)

type PaymentType string

const (
	PaymentBankTransfer PaymentType = "bank_transfer"
	PaymentCheck        PaymentType = "check"
	PaymentPaypal       PaymentType = "paypal"
	PaymentOther        PaymentType = "other"
)

type Invoice struct {
	BaseModel
	ProjectID      uint            `gorm:"index;not null"`
	QuoteID        *uint           `gorm:"index"`
	Number         string          `gorm:"size:50;uniqueIndex:idx_invoices_number,where:number <> ''"`
	Status         InvoiceStatus   `gorm:"size:20;index;not null;default:draft"`
	IssueDate      datatypes.Date  `gorm:"not null"`
	PaymentDueDate datatypes.Date  `gorm:"index;not null"`
	PaymentType    PaymentType     `gorm:"size:20;not null;default:bank_transfer"`
	PaymentDate    *datatypes.Date
	FooterNote     *string `gorm:"type:text"`

	Project Project       `gorm:"foreignKey:ProjectID"`
	Quote   *Quote        `gorm:"foreignKey:QuoteID;constraint:OnDelete:SET NULL"`
	Lines   []InvoiceLine `gorm:"constraint:OnDelete:CASCADE"`
}

func (i Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range i.Lines {
		total = total.Add(l.Total())
	}
	return total
}

// IsOverdue reports whether the invoice is sent and due strictly before today.
func (i Invoice) IsOverdue(today datatypes.Date) bool {
	return i.Status == InvoiceSent && time.Time(i.PaymentDueDate).Before(time.Time(today))
}

type InvoiceLine struct {
	BaseModel
	InvoiceID   uint            `gorm:"index;not null"`
	Description string          `gorm:"type:text;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"not null"`
}

func (l InvoiceLine) Total() decimal.Decimal {
	return LineTotal(l.UnitPrice, l.Quantity)
}

// InvoiceNumber builds the display number given to invoices created without one.
func InvoiceNumber(year int, id uint) string {
	return fmt.Sprintf("FAC-%d-%05d", year, id)
}
