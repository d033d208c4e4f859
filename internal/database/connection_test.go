// internal/database/connection_test.go
package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/littlethreads/storefront/internal/config"
	"github.com/littlethreads/storefront/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Initialize(config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return db
}

func TestInitializeRejectsUnknownDriver(t *testing.T) {
	_, err := Initialize(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestRunMigrationsCreatesSchema(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	migrator := db.Migrator()
	for _, model := range []interface{}{
		&models.User{}, &models.Product{}, &models.ProductImage{},
		&models.ProductVariant{}, &models.Order{},
	} {
		assert.True(t, migrator.HasTable(model))
	}

	for _, column := range []string{"ShipName", "ShipPhone", "ShipPostcode", "ShipAddr1", "ShipAddr2", "ShipMemo"} {
		assert.True(t, migrator.HasColumn(&models.Order{}, column), column)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	// Data written between runs survives the second run.
	require.NoError(t, db.Create(&models.Product{Title: "Tee", Price: 800}).Error)
	require.NoError(t, RunMigrations(db))

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWithTransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	err := WithTransaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Product{Title: "Tee", Price: 800}).Error; err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}
