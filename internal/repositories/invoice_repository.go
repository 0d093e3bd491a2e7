package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/pkg/utils"
)

type InvoiceRepository interface {
	// Create stores the invoice and its lines; an empty number is replaced
	// by the generated FAC-<year>-<id> form inside the same transaction.
	Create(ctx context.Context, invoice *db_models.Invoice) error
	FindByID(ctx context.Context, scope utils.Scope, id uint) (*db_models.Invoice, error)
	List(ctx context.Context, scope utils.Scope, params utils.ListParams, today datatypes.Date) ([]db_models.Invoice, int64, error)
	Update(ctx context.Context, invoice *db_models.Invoice) error
	Delete(ctx context.Context, id uint) error
	NumberTaken(ctx context.Context, number string, exceptID uint) (bool, error)
	// FindOverdueByAccount returns sent invoices due strictly before today
	// that chain up to the account, lines preloaded.
	FindOverdueByAccount(ctx context.Context, accountID uint, today datatypes.Date) ([]db_models.Invoice, error)

	CreateLine(ctx context.Context, line *db_models.InvoiceLine) error
	FindLine(ctx context.Context, scope utils.Scope, id uint) (*db_models.InvoiceLine, error)
	ListLines(ctx context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.InvoiceLine, int64, error)
	UpdateLine(ctx context.Context, line *db_models.InvoiceLine) error
	DeleteLine(ctx context.Context, id uint) error
}

var invoiceSortable = map[string]string{
	"id":               "id",
	"number":           "number",
	"status":           "status",
	"issue_date":       "issue_date",
	"payment_due_date": "payment_due_date",
	"created_at":       "created_at",
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *db_models.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Project", "Quote").Create(invoice).Error; err != nil {
			return err
		}
		if invoice.Number != "" {
			return nil
		}
		invoice.Number = db_models.InvoiceNumber(time.Time(invoice.IssueDate).Year(), invoice.ID)
		return tx.Model(invoice).UpdateColumn("number", invoice.Number).Error
	})
}

func (r *invoiceRepository) FindByID(ctx context.Context, scope utils.Scope, id uint) (*db_models.Invoice, error) {
	var invoice db_models.Invoice
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(scope, "project_id", projectIDsOf)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, scope utils.Scope, params utils.ListParams, today datatypes.Date) ([]db_models.Invoice, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Invoice{}).Scopes(ownedBy(scope, "project_id", projectIDsOf))
	if v, ok := params.Filter("project_id"); ok {
		q = q.Where("project_id = ?", v)
	}
	if v, ok := params.Filter("status"); ok {
		q = q.Where("status = ?", v)
	}
	if v, ok := params.Filter("overdue"); ok && v == "true" {
		q = q.Where("status = ? AND payment_due_date < ?", db_models.InvoiceSent, today)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []db_models.Invoice
	err := q.Preload("Lines").Scopes(paginate(params, invoiceSortable, "id")).Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *db_models.Invoice) error {
	return r.db.WithContext(ctx).Omit("Project", "Quote", "Lines").Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&db_models.InvoiceLine{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&db_models.Invoice{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *invoiceRepository) NumberTaken(ctx context.Context, number string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Invoice{}).
		Where("number = ? AND id <> ?", number, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *invoiceRepository) FindOverdueByAccount(ctx context.Context, accountID uint, today datatypes.Date) ([]db_models.Invoice, error) {
	var invoices []db_models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("status = ? AND payment_due_date < ?", db_models.InvoiceSent, today).
		Where("project_id IN (?)", projectIDsOf(r.db, accountID)).
		Order("payment_due_date ASC, id ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) CreateLine(ctx context.Context, line *db_models.InvoiceLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *invoiceRepository) FindLine(ctx context.Context, scope utils.Scope, id uint) (*db_models.InvoiceLine, error) {
	var line db_models.InvoiceLine
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(scope, "invoice_id", invoiceIDsOf)).
		First(&line, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *invoiceRepository) ListLines(ctx context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.InvoiceLine, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.InvoiceLine{}).Scopes(ownedBy(scope, "invoice_id", invoiceIDsOf))
	if v, ok := params.Filter("invoice_id"); ok {
		q = q.Where("invoice_id = ?", v)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lines []db_models.InvoiceLine
	err := q.Scopes(paginate(params, lineSortable, "id")).Find(&lines).Error
	return lines, total, err
}

func (r *invoiceRepository) UpdateLine(ctx context.Context, line *db_models.InvoiceLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *invoiceRepository) DeleteLine(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&db_models.InvoiceLine{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
