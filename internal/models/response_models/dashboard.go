package response_models

import (
	"github.com/shopspring/decimal"
)

type AmountBlock struct {
	Amount decimal.Decimal `json:"amount"`
	Count  int64           `json:"count"`
}

type KPIBlock struct {
	PaidRevenue AmountBlock `json:"paid_revenue"`
	Outstanding AmountBlock `json:"outstanding"`
	Overdue     AmountBlock `json:"overdue"`

	// Ceiling headroom and charges derived from the account settings
	MaxAnnualRevenue decimal.Decimal `json:"max_annual_revenue"`
	RemainingRevenue decimal.Decimal `json:"remaining_revenue"`
	ExpenseRate      decimal.Decimal `json:"expense_rate"`
	EstimatedCharges decimal.Decimal `json:"estimated_charges"`
	NetRevenue       decimal.Decimal `json:"net_revenue"`
}

type SeriesPoint struct {
	// YYYY-MM
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
}

type RevenueSeries struct {
	Points []SeriesPoint   `json:"points"`
	Total  decimal.Decimal `json:"total"`
}

type CountsBlock struct {
	Clients  int64            `json:"clients"`
	Projects map[string]int64 `json:"projects"`
	Quotes   map[string]int64 `json:"quotes"`
	Invoices map[string]int64 `json:"invoices"`
}

type DashboardReport struct {
	Year    int           `json:"year"`
	Today   string        `json:"today"`
	KPIs    KPIBlock      `json:"kpis"`
	Revenue RevenueSeries `json:"revenue"`
	Counts  CountsBlock   `json:"counts"`
}
