package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/pkg/utils"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *db_models.Quote) error
	FindByID(ctx context.Context, scope utils.Scope, id uint) (*db_models.Quote, error)
	List(ctx context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.Quote, int64, error)
	Update(ctx context.Context, quote *db_models.Quote) error
	Delete(ctx context.Context, id uint) error
	ReferenceTaken(ctx context.Context, reference string, exceptID uint) (bool, error)

	CreateLine(ctx context.Context, line *db_models.QuoteLine) error
	FindLine(ctx context.Context, scope utils.Scope, id uint) (*db_models.QuoteLine, error)
	ListLines(ctx context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.QuoteLine, int64, error)
	UpdateLine(ctx context.Context, line *db_models.QuoteLine) error
	DeleteLine(ctx context.Context, id uint) error
}

var quoteSortable = map[string]string{
	"id":          "id",
	"reference":   "reference",
	"status":      "status",
	"issue_date":  "issue_date",
	"expiry_date": "expiry_date",
	"created_at":  "created_at",
}

var lineSortable = map[string]string{
	"id":          "id",
	"description": "description",
	"unit_price":  "unit_price",
	"quantity":    "quantity",
}

type quoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *db_models.Quote) error {
	return r.db.WithContext(ctx).Omit("Project").Create(quote).Error
}

func (r *quoteRepository) FindByID(ctx context.Context, scope utils.Scope, id uint) (*db_models.Quote, error) {
	var quote db_models.Quote
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(scope, "project_id", projectIDsOf)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&quote, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) List(ctx context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.Quote, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Quote{}).Scopes(ownedBy(scope, "project_id", projectIDsOf))
	if v, ok := params.Filter("project_id"); ok {
		q = q.Where("project_id = ?", v)
	}
	if v, ok := params.Filter("status"); ok {
		q = q.Where("status = ?", v)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotes []db_models.Quote
	err := q.Preload("Lines").Scopes(paginate(params, quoteSortable, "id")).Find(&quotes).Error
	return quotes, total, err
}

// Update saves the quote columns only; lines have their own endpoints.
func (r *quoteRepository) Update(ctx context.Context, quote *db_models.Quote) error {
	return r.db.WithContext(ctx).Omit("Project", "Lines").Save(quote).Error
}

func (r *quoteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.Invoice{}).Where("quote_id = ?", id).Update("quote_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", id).Delete(&db_models.QuoteLine{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&db_models.Quote{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *quoteRepository) ReferenceTaken(ctx context.Context, reference string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Quote{}).
		Where("reference = ? AND id <> ?", reference, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *quoteRepository) CreateLine(ctx context.Context, line *db_models.QuoteLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *quoteRepository) FindLine(ctx context.Context, scope utils.Scope, id uint) (*db_models.QuoteLine, error) {
	var line db_models.QuoteLine
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(scope, "quote_id", quoteIDsOf)).
		First(&line, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *quoteRepository) ListLines(ctx context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.QuoteLine, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.QuoteLine{}).Scopes(ownedBy(scope, "quote_id", quoteIDsOf))
	if v, ok := params.Filter("quote_id"); ok {
		q = q.Where("quote_id = ?", v)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lines []db_models.QuoteLine
	err := q.Scopes(paginate(params, lineSortable, "id")).Find(&lines).Error
	return lines, total, err
}

func (r *quoteRepository) UpdateLine(ctx context.Context, line *db_models.QuoteLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *quoteRepository) DeleteLine(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&db_models.QuoteLine{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
