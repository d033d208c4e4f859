// internal/services/testutil_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/littlethreads/storefront/internal/config"
	"github.com/littlethreads/storefront/internal/database"
	"github.com/littlethreads/storefront/internal/models"
	"github.com/littlethreads/storefront/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One connection keeps the in-memory database alive for the test.
	db, err := database.Initialize(config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Session: config.SessionConfig{
			Secret:   "test-secret",
			TTLHours: 8,
		},
		Admin: config.AdminConfig{Password: "letmein"},
		Storage: config.StorageConfig{
			Backend:            "local",
			UploadDir:          "",
			MaxUploadBytes:     10 * 1024 * 1024,
			MaxImagesPerUpload: 12,
		},
	}
}

func newTestPagination() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 50, Sort: "created_at", Order: "desc"}
}

func createTestProduct(t *testing.T, db *gorm.DB, title string, price, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Title: title, Price: price, Stock: stock}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestVariant(t *testing.T, db *gorm.DB, productID uint, size, color string, stock int) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{ProductID: productID, Size: size, Color: color, Stock: stock}
	require.NoError(t, db.Create(variant).Error)
	return variant
}
