package db_models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type QuoteStatus string

const (
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
)

// QuoteValidityDays is applied when a quote is created without an expiry date.
const QuoteValidityDays = 30

type Quote struct {
	BaseModel
	ProjectID  uint           `gorm:"index;not null"`
	Reference  string         `gorm:"size:50;uniqueIndex;not null"`
	Status     QuoteStatus    `gorm:"size:20;index;not null;default:sent"`
	IssueDate  datatypes.Date `gorm:"not null"`
	ExpiryDate datatypes.Date `gorm:"not null"`
	Note       string         `gorm:"type:text"`

	Project Project     `gorm:"foreignKey:ProjectID"`
	Lines   []QuoteLine `gorm:"constraint:OnDelete:CASCADE"`
}

func (q Quote) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.Lines {
		total = total.Add(l.Total())
	}
	return total
}

type QuoteLine struct {
	BaseModel
	QuoteID     uint            `gorm:"index;not null"`
	Description string          `gorm:"type:text;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"not null"`
}

func (l QuoteLine) Total() decimal.Decimal {
	return LineTotal(l.UnitPrice, l.Quantity)
}

// LineTotal is the only place a line amount is derived; it is never stored.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
