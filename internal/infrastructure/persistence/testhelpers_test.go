package persistence

import (
	"testing"
	"time"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/settlement"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with every model migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// settleLots marks lots settled by payment the way the payment service does
// before committing
func settleLots(t *testing.T, payment *settlement.SupplierPayment, at time.Time, lots ...*settlement.Lot) []*settlement.Lot {
	t.Helper()
	for _, lot := range lots {
		require.NoError(t, lot.MarkSettled(payment.ID, at))
	}
	return lots
}
