package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"facturo/internal/models/db_models"
)

type PasswordResetRepository interface {
	// Replace drops every token of the account then stores the new one.
	Replace(ctx context.Context, accountID uint, token string, expiresAt time.Time) (*db_models.PasswordResetToken, error)
	FindByToken(ctx context.Context, token string) (*db_models.PasswordResetToken, error)
	// Consume deletes the token if still fresh at now and sets the new
	// password hash, in one transaction. A token already consumed or
	// expired yields gorm.ErrRecordNotFound.
	Consume(ctx context.Context, token *db_models.PasswordResetToken, passwordHash string, now time.Time) error
	// DeleteExpired purges tokens no longer valid at now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Replace(ctx context.Context, accountID uint, token string, expiresAt time.Time) (*db_models.PasswordResetToken, error) {
	record := &db_models.PasswordResetToken{
		AccountID: accountID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", accountID).Delete(&db_models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Omit("Account").Create(record).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *passwordResetRepository) FindByToken(ctx context.Context, token string) (*db_models.PasswordResetToken, error) {
	var record db_models.PasswordResetToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *passwordResetRepository) Consume(ctx context.Context, token *db_models.PasswordResetToken, passwordHash string, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The delete claims the token; a concurrent reset finds nothing left.
		res := tx.Where("id = ? AND expires_at > ?", token.ID, now).Delete(&db_models.PasswordResetToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		res = tx.Model(&db_models.Account{}).Where("id = ?", token.AccountID).Update("password_hash", passwordHash)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *passwordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&db_models.PasswordResetToken{})
	return res.RowsAffected, res.Error
}
