package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/pkg/utils"
)

type AccountRepository interface {
	InsertTx(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uint) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	List(ctx context.Context, params utils.ListParams) ([]db_models.Account, int64, error)
	ListAll(ctx context.Context) ([]db_models.Account, error)
	Update(ctx context.Context, account *db_models.Account) error
	DeleteCascade(ctx context.Context, id uint) error
}

var accountSortable = map[string]string{
	"id":         "id",
	"email":      "email",
	"last_name":  "last_name",
	"created_at": "created_at",
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) InsertTx(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Clients", "PasswordResetTokens").Create(account).Error
	})
}

func (a *accountRepository) FindById(ctx context.Context, id uint) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "LOWER(email) = LOWER(?)", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&db_models.Account{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (a *accountRepository) List(ctx context.Context, params utils.ListParams) ([]db_models.Account, int64, error) {
	q := a.db.WithContext(ctx).Model(&db_models.Account{})
	if term, ok := params.Filter("q"); ok {
		p := likePattern(term)
		q = q.Where("LOWER(email) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(company_name) LIKE ?", p, p, p)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []db_models.Account
	err := q.Scopes(paginate(params, accountSortable, "id")).Find(&accounts).Error
	return accounts, total, err
}

func (a *accountRepository) ListAll(ctx context.Context) ([]db_models.Account, error) {
	var accounts []db_models.Account
	err := a.db.WithContext(ctx).Order("id ASC").Find(&accounts).Error
	return accounts, err
}

func (a *accountRepository) Update(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Omit("Clients", "PasswordResetTokens").Save(account).Error
}

// DeleteCascade removes the account and everything it owns in one transaction.
func (a *accountRepository) DeleteCascade(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteProjects(tx, projectIDsOf(tx, id)); err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&db_models.Client{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&db_models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&db_models.Account{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
