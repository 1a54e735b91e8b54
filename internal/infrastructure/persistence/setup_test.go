package persistence

import (
	"testing"

	"github.com/fubble/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the full schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.CustomerModel{},
		&models.PlanModel{},
		&models.PriceComponentModel{},
		&models.SubscriptionModel{},
		&models.UsageEventModel{},
		&models.InvoiceModel{},
		&models.InvoiceItemModel{},
	)
	require.NoError(t, err)

	return db
}
