package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dbm "facturo/internal/models/db_models"
)

type DashboardRepository interface {
	// Amounts
	PaidRevenue(ctx context.Context, accountID uint, start, end datatypes.Date) (AmountRow, error)
	OutstandingAmount(ctx context.Context, accountID uint) (AmountRow, error)
	OverdueAmount(ctx context.Context, accountID uint, today datatypes.Date) (AmountRow, error)

	// Time series
	RevenueSeries(ctx context.Context, accountID uint, start, end datatypes.Date) ([]BucketSum, error)

	// Counts
	CountClients(ctx context.Context, accountID uint) (int64, error)
	CountProjectsByStatus(ctx context.Context, accountID uint) ([]StatusCount, error)
	CountQuotesByStatus(ctx context.Context, accountID uint) ([]StatusCount, error)
	CountInvoicesByStatus(ctx context.Context, accountID uint) ([]StatusCount, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type AmountRow struct {
	Total decimal.Decimal `gorm:"column:total"`
	Count int64           `gorm:"column:count"`
}

type BucketSum struct {
	Bucket time.Time       `gorm:"column:bucket"`
	Sum    decimal.Decimal `gorm:"column:sum"`
}

type StatusCount struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

// ---------- Helpers ----------

// settledOn is the date a paid invoice counts toward revenue.
const settledOn = "COALESCE(i.payment_date, i.issue_date)"

// invoiceAmounts sums line totals of the account's invoices; invoices
// without lines still count.
func (r *dashboardRepository) invoiceAmounts(ctx context.Context, accountID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("invoices i").
		Joins("LEFT JOIN invoice_lines l ON l.invoice_id = i.id").
		Where("i.project_id IN (?)", projectIDsOf(r.db, accountID))
}

// ---------- Amounts ----------
func (r *dashboardRepository) PaidRevenue(ctx context.Context, accountID uint, start, end datatypes.Date) (AmountRow, error) {
	var row AmountRow
	err := r.invoiceAmounts(ctx, accountID).
		Select("COALESCE(SUM(l.unit_price * l.quantity), 0) AS total, COUNT(DISTINCT i.id) AS count").
		Where("i.status = ?", dbm.InvoicePaid).
		Where(settledOn+" BETWEEN ? AND ?", start, end).
		Scan(&row).Error
	return row, err
}

func (r *dashboardRepository) OutstandingAmount(ctx context.Context, accountID uint) (AmountRow, error) {
	var row AmountRow
	err := r.invoiceAmounts(ctx, accountID).
		Select("COALESCE(SUM(l.unit_price * l.quantity), 0) AS total, COUNT(DISTINCT i.id) AS count").
		Where("i.status = ?", dbm.InvoiceSent).
		Scan(&row).Error
	return row, err
}

func (r *dashboardRepository) OverdueAmount(ctx context.Context, accountID uint, today datatypes.Date) (AmountRow, error) {
	var row AmountRow
	err := r.invoiceAmounts(ctx, accountID).
		Select("COALESCE(SUM(l.unit_price * l.quantity), 0) AS total, COUNT(DISTINCT i.id) AS count").
		Where("i.status = ? AND i.payment_due_date < ?", dbm.InvoiceSent, today).
		Scan(&row).Error
	return row, err
}

// ---------- Series ----------
func (r *dashboardRepository) RevenueSeries(ctx context.Context, accountID uint, start, end datatypes.Date) ([]BucketSum, error) {
	var rows []BucketSum
	err := r.invoiceAmounts(ctx, accountID).
		Select("date_trunc('month', "+settledOn+") AS bucket, COALESCE(SUM(l.unit_price * l.quantity), 0) AS sum").
		Where("i.status = ?", dbm.InvoicePaid).
		Where(settledOn+" BETWEEN ? AND ?", start, end).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	return rows, err
}

// ---------- Counts ----------
func (r *dashboardRepository) CountClients(ctx context.Context, accountID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Client{}).Where("account_id = ?", accountID).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountProjectsByStatus(ctx context.Context, accountID uint) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&dbm.Project{}).
		Select("status, COUNT(*) AS count").
		Where("client_id IN (?)", clientIDsOf(r.db, accountID)).
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CountQuotesByStatus(ctx context.Context, accountID uint) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&dbm.Quote{}).
		Select("status, COUNT(*) AS count").
		Where("project_id IN (?)", projectIDsOf(r.db, accountID)).
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CountInvoicesByStatus(ctx context.Context, accountID uint) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&dbm.Invoice{}).
		Select("status, COUNT(*) AS count").
		Where("project_id IN (?)", projectIDsOf(r.db, accountID)).
		Group("status").
		Scan(&rows).Error
	return rows, err
}
