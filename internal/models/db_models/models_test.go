package db_models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestLineTotalIsUnitPriceTimesQuantity(t *testing.T) {
	line := QuoteLine{UnitPrice: decimal.RequireFromString("12.50"), Quantity: 3}
	assert.True(t, line.Total().Equal(decimal.RequireFromString("37.50")))

	line.Quantity = 4
	assert.True(t, line.Total().Equal(decimal.RequireFromString("50")), "total follows stored fields")
}

func TestInvoiceTotalSumsLines(t *testing.T) {
	inv := Invoice{Lines: []InvoiceLine{
		{UnitPrice: decimal.RequireFromString("100"), Quantity: 2},
		{UnitPrice: decimal.RequireFromString("0.99"), Quantity: 1},
	}}
	assert.Equal(t, "200.99", inv.Total().StringFixed(2))
	assert.True(t, Invoice{}.Total().IsZero())
}

func TestPasswordResetTokenValidity(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tok := PasswordResetToken{ExpiresAt: now.Add(time.Minute)}
	assert.True(t, tok.IsValid(now))
	assert.False(t, tok.IsValid(now.Add(time.Minute)))
	assert.False(t, tok.IsValid(now.Add(time.Hour)))
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "FAC-2024-00042", InvoiceNumber(2024, 42))
}

func TestAccountRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, Account{IsAdmin: true}.Role())
	assert.Equal(t, RoleUser, Account{}.Role())
	assert.Equal(t, "Ada Lovelace", Account{FirstName: "Ada", LastName: "Lovelace"}.FullName())
}

func TestInvoiceIsOverdue(t *testing.T) {
	day := func(d int) datatypes.Date { return datatypes.Date(time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)) }
	inv := Invoice{Status: InvoiceSent, PaymentDueDate: day(15)}

	assert.True(t, inv.IsOverdue(day(16)))
	assert.False(t, inv.IsOverdue(day(15)))

	inv.Status = InvoicePaid
	assert.False(t, inv.IsOverdue(day(31)))
}
