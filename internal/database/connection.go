// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/littlethreads/storefront/internal/config"
	"github.com/littlethreads/storefront/internal/models"
)

// Initialize opens the configured backend. The embedded sqlite engine and
// networked postgres present the same logical schema; everything above this
// package is backend-agnostic.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLiteDSN())
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithField("driver", cfg.Driver).Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	}
}

// RunMigrations creates the tables if absent and applies additive
// migrations. Safe to call on every process start; repeated calls are
// no-ops.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductVariant{},
		&models.Order{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := ensureAdditiveColumns(db); err != nil {
		return fmt.Errorf("failed to apply additive migrations: %w", err)
	}

	createIndexes(db)

	return nil
}

// ensureAdditiveColumns backfills columns added after the first release.
// Each ADD COLUMN is preceded by a missing-column check so databases
// created by any prior schema version converge without destructive DDL.
func ensureAdditiveColumns(db *gorm.DB) error {
	migrator := db.Migrator()

	orderColumns := []string{
		"ShipName",
		"ShipPhone",
		"ShipPostcode",
		"ShipAddr1",
		"ShipAddr2",
		"ShipMemo",
	}

	for _, column := range orderColumns {
		if migrator.HasColumn(&models.Order{}, column) {
			continue
		}
		if err := migrator.AddColumn(&models.Order{}, column); err != nil {
			return fmt.Errorf("add column %s: %w", column, err)
		}
	}

	return nil
}

func createIndexes(db *gorm.DB) {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_variants_product ON product_variants(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_variants_key ON product_variants(product_id, size, color)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
