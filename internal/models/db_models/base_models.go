package db_models

import (
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Hooks keep timestamps in UTC regardless of the server location
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	return nil
}

func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// AllModels lists every table in dependency order, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&Account{},
		&PasswordResetToken{},
		&Client{},
		&Project{},
		&Quote{},
		&QuoteLine{},
		&Invoice{},
		&InvoiceLine{},
	}
}
