package infra

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"facturo/internal/models/db_models"
)

func InitPostgresql(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	log.Info("postgres connected")
	return db, nil
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("get database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("close database connection", zap.Error(err))
	} else {
		log.Info("postgres connection closed")
	}
}

// Migrate creates or updates every table along with its FK constraints.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(db_models.AllModels()...)
}
