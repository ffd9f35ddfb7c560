// Package persistence provides the embedded local store: gorm-backed
// implementations of the settings, tracking, directory and expense ports used
// whenever the matching remote service is not configured.
package persistence

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shopops/backend/internal/infrastructure/config"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
)

// Store holds the local database connection.
type Store struct {
	DB *gorm.DB
}

// Open connects to the configured local database and migrates the schema.
func Open(cfg *config.StoreConfig, logger gormlogger.Interface) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("persistence: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("persistence: failed to connect: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

// migrate creates or updates the local schema.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.SettingModel{},
		&models.TrackingModel{},
		&models.CustomerModel{},
		&models.ExpenseModel{},
	); err != nil {
		return fmt.Errorf("persistence: migration failed: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return fmt.Errorf("persistence: failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive.
func (s *Store) Ping() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return fmt.Errorf("persistence: failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}
