package response_models

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"facturo/internal/models/db_models"
)

type AuthResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

type AccountResponse struct {
	ID               uint            `json:"id"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	PostalCode       string          `json:"postal_code"`
	City             string          `json:"city"`
	Country          string          `json:"country"`
	CompanyName      string          `json:"company_name"`
	Siret            string          `json:"siret"`
	MaxAnnualRevenue decimal.Decimal `json:"max_annual_revenue"`
	ExpenseRate      decimal.Decimal `json:"expense_rate"`
	Role             string          `json:"role"`
	IsAdmin          bool            `json:"is_admin"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type EmailCheckResponse struct {
	Exists bool `json:"exists"`
}

type ResetTokenStatusResponse struct {
	Valid bool `json:"valid"`
}

func FromAccount(a db_models.Account) AccountResponse {
	return AccountResponse{
		ID:               a.ID,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		Phone:            a.Phone,
		Address:          a.Address,
		PostalCode:       a.PostalCode,
		City:             a.City,
		Country:          a.Country,
		CompanyName:      a.CompanyName,
		Siret:            a.Siret,
		MaxAnnualRevenue: a.MaxAnnualRevenue,
		ExpenseRate:      a.ExpenseRate,
		Role:             a.Role(),
		IsAdmin:          a.IsAdmin,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func FromAccounts(accounts []db_models.Account) []AccountResponse {
	return lo.Map(accounts, func(a db_models.Account, _ int) AccountResponse { return FromAccount(a) })
}
