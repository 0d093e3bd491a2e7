package request_models

import "github.com/shopspring/decimal"

// AccountProfile is the editable part of an account, shared by
// registration and the accounts resource.
type AccountProfile struct {
	FirstName        string           `json:"first_name" binding:"required,max=100"`
	LastName         string           `json:"last_name" binding:"required,max=100"`
	Email            string           `json:"email" binding:"required,email,max=255"`
	Phone            string           `json:"phone" binding:"omitempty,max=30"`
	Address          string           `json:"address" binding:"omitempty,max=255"`
	PostalCode       string           `json:"postal_code" binding:"omitempty,max=20"`
	City             string           `json:"city" binding:"omitempty,max=100"`
	Country          string           `json:"country" binding:"omitempty,max=100"`
	CompanyName      string           `json:"company_name" binding:"omitempty,max=255"`
	Siret            string           `json:"siret" binding:"omitempty,numeric,len=14"`
	MaxAnnualRevenue *decimal.Decimal `json:"max_annual_revenue" binding:"omitempty,money"`
	ExpenseRate      *decimal.Decimal `json:"expense_rate" binding:"omitempty,percent"`
}

type CreateAccountRequest struct {
	AccountProfile
	Password string `json:"password" binding:"required,min=8,max=72"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateAccountRequest replaces the profile. Password is changed only when
// set; IsAdmin is honoured for admin callers only.
type UpdateAccountRequest struct {
	AccountProfile
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	IsAdmin  *bool   `json:"is_admin"`
}
