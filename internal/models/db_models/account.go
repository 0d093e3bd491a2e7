package db_models

import "github.com/shopspring/decimal"

type Account struct {
	BaseModel
	FirstName   string `gorm:"size:100;not null"`
	LastName    string `gorm:"size:100;not null"`
	Email       string `gorm:"size:255;uniqueIndex;not null"`
	Phone       string `gorm:"size:30"`
	Address     string `gorm:"size:255"`
	PostalCode  string `gorm:"size:20"`
	City        string `gorm:"size:100"`
	Country     string `gorm:"size:100"`
	CompanyName string `gorm:"size:255"`
	Siret       string `gorm:"size:14"`

	// Yearly turnover ceiling and expense rate (percent) used by the dashboard
	MaxAnnualRevenue decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ExpenseRate      decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`

	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`

	Clients             []Client             `gorm:"constraint:OnDelete:CASCADE"`
	PasswordResetTokens []PasswordResetToken `gorm:"constraint:OnDelete:CASCADE"`
}

func (a Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Role is the value carried in access tokens.
func (a Account) Role() string {
	if a.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
