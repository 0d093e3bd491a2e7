package db_models

import "time"

type PasswordResetToken struct {
	BaseModel
	AccountID uint      `gorm:"index;not null"`
	Token     string    `gorm:"size:128;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`

	Account Account `gorm:"foreignKey:AccountID"`
}

func (t PasswordResetToken) IsValid(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}
