package seed

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	refdomain "github.com/smallbiznis/pawnshop/internal/reference/domain"
	"github.com/smallbiznis/pawnshop/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:seed_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(conn))
	return conn
}

func count(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(model).Count(&n).Error)
	return n
}

func TestEnsureReferenceData_SeedsDefaults(t *testing.T) {
	conn := setupTestDB(t)

	require.NoError(t, EnsureReferenceData(conn))

	assert.Equal(t, int64(4), count(t, conn, &refdomain.MetalType{}))
	assert.Equal(t, int64(10), count(t, conn, &refdomain.Purity{}))
	assert.Equal(t, int64(4), count(t, conn, &refdomain.SpotPrice{}))
	assert.Equal(t, int64(12), count(t, conn, &refdomain.PriceEstimate{}))
	assert.Equal(t, int64(3), count(t, conn, &refdomain.DiamondEstimate{}))
	assert.Equal(t, int64(1), count(t, conn, &refdomain.CaratConversion{}))

	var gold refdomain.MetalType
	require.NoError(t, conn.Where("code = ?", "gold").First(&gold).Error)
	assert.Equal(t, "Gold", gold.Name)
}

func TestEnsureReferenceData_IsIdempotentAndKeepsEdits(t *testing.T) {
	conn := setupTestDB(t)
	require.NoError(t, EnsureReferenceData(conn))

	require.NoError(t, conn.Model(&refdomain.SpotPrice{}).
		Where("metal_type_id = ?", 1).
		Update("price_per_gram", 80.25).Error)

	require.NoError(t, EnsureReferenceData(conn))

	assert.Equal(t, int64(4), count(t, conn, &refdomain.MetalType{}))
	assert.Equal(t, int64(10), count(t, conn, &refdomain.Purity{}))

	var spot refdomain.SpotPrice
	require.NoError(t, conn.Where("metal_type_id = ?", 1).First(&spot).Error)
	assert.Equal(t, 80.25, spot.PricePerGram)
}

func TestEnsureReferenceData_RequiresHandle(t *testing.T) {
	assert.Error(t, EnsureReferenceData(nil))
	assert.Error(t, AutoMigrate(nil))
}

func TestPriceEstimates_OneRowPerMetalAndTransaction(t *testing.T) {
	conn := setupTestDB(t)
	require.NoError(t, EnsureReferenceData(conn))

	err := conn.Create(&refdomain.PriceEstimate{
		ID:              999,
		MetalTypeID:     1,
		TransactionType: "pawn",
		EstimatePercent: 10,
	}).Error
	require.Error(t, err)
	assert.True(t, db.IsDuplicateKeyErr(err))

	require.NoError(t, conn.Create(&refdomain.PriceEstimate{
		ID:              998,
		MetalTypeID:     1,
		TransactionType: "melt",
		EstimatePercent: 98,
	}).Error)
}
