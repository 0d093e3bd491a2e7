package services

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	resp "facturo/internal/models/response_models"
	"facturo/internal/repositories"
	"facturo/pkg/utils"
)

type DashboardService interface {
	// BuildDashboard reports on the caller's own account for a calendar year;
	// year 0 means the current one.
	BuildDashboard(ctx context.Context, accountID uint, year int) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo        repositories.DashboardRepository
	accountRepo repositories.AccountRepository
	clock       utils.Clock
}

func NewDashboardService(repo repositories.DashboardRepository, accountRepo repositories.AccountRepository, clock utils.Clock) DashboardService {
	return &dashboardService{repo: repo, accountRepo: accountRepo, clock: clock}
}

var hundred = decimal.NewFromInt(100)

// yearRange returns Jan 1 and Dec 31 of year.
func yearRange(year int) (datatypes.Date, datatypes.Date) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return datatypes.Date(start), datatypes.Date(end)
}

func (s *dashboardService) BuildDashboard(ctx context.Context, accountID uint, year int) (*resp.DashboardReport, error) {
	today := s.clock.Today()
	if year == 0 {
		year = time.Time(today).Year()
	}
	start, end := yearRange(year)

	account, err := s.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.WrapDB("find account", err)
	}
	if account == nil {
		return nil, utils.ErrNotFound
	}

	// ---------- Amounts ----------
	paid, err := s.repo.PaidRevenue(ctx, accountID, start, end)
	if err != nil {
		return nil, utils.WrapDB("paid revenue", err)
	}
	outstanding, err := s.repo.OutstandingAmount(ctx, accountID)
	if err != nil {
		return nil, utils.WrapDB("outstanding amount", err)
	}
	overdue, err := s.repo.OverdueAmount(ctx, accountID, today)
	if err != nil {
		return nil, utils.WrapDB("overdue amount", err)
	}

	charges := paid.Total.Mul(account.ExpenseRate).Div(hundred).Round(2)
	remaining := account.MaxAnnualRevenue.Sub(paid.Total)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	// ---------- Series ----------
	rows, err := s.repo.RevenueSeries(ctx, accountID, start, end)
	if err != nil {
		return nil, utils.WrapDB("revenue series", err)
	}
	byMonth := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		byMonth[r.Bucket.Format("2006-01")] = r.Sum
	}
	// every month is reported, empty ones as zero
	points := make([]resp.SeriesPoint, 0, 12)
	total := decimal.Zero
	for m := time.January; m <= time.December; m++ {
		key := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
		v := byMonth[key]
		total = total.Add(v)
		points = append(points, resp.SeriesPoint{Month: key, Value: v})
	}

	// ---------- Counts ----------
	clients, err := s.repo.CountClients(ctx, accountID)
	if err != nil {
		return nil, utils.WrapDB("count clients", err)
	}
	projects, err := s.repo.CountProjectsByStatus(ctx, accountID)
	if err != nil {
		return nil, utils.WrapDB("count projects", err)
	}
	quotes, err := s.repo.CountQuotesByStatus(ctx, accountID)
	if err != nil {
		return nil, utils.WrapDB("count quotes", err)
	}
	invoices, err := s.repo.CountInvoicesByStatus(ctx, accountID)
	if err != nil {
		return nil, utils.WrapDB("count invoices", err)
	}

	return &resp.DashboardReport{
		Year:  year,
		Today: utils.FormatDate(today),
		KPIs: resp.KPIBlock{
			PaidRevenue:      resp.AmountBlock{Amount: paid.Total, Count: paid.Count},
			Outstanding:      resp.AmountBlock{Amount: outstanding.Total, Count: outstanding.Count},
			Overdue:          resp.AmountBlock{Amount: overdue.Total, Count: overdue.Count},
			MaxAnnualRevenue: account.MaxAnnualRevenue,
			RemainingRevenue: remaining,
			ExpenseRate:      account.ExpenseRate,
			EstimatedCharges: charges,
			NetRevenue:       paid.Total.Sub(charges),
		},
		Revenue: resp.RevenueSeries{Points: points, Total: total},
		Counts: resp.CountsBlock{
			Clients:  clients,
			Projects: statusMap(projects),
			Quotes:   statusMap(quotes),
			Invoices: statusMap(invoices),
		},
	}, nil
}

func statusMap(rows []repositories.StatusCount) map[string]int64 {
	return lo.SliceToMap(rows, func(r repositories.StatusCount) (string, int64) {
		return r.Status, r.Count
	})
}
