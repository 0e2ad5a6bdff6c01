package pos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
)

func setupPOSDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS pos_data (
  id TEXT,
  tenant_id TEXT NOT NULL,
  retailer_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  date DATETIME NOT NULL,
  baseline_sales INTEGER NOT NULL,
  promoted_sales INTEGER NOT NULL,
  baseline_revenue REAL NOT NULL,
  promoted_revenue REAL NOT NULL,
  units INTEGER NOT NULL,
  price REAL NOT NULL,
  is_promotion INTEGER NOT NULL DEFAULT 0,
  promotion_id TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newPOSService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func seedPOSRow(t *testing.T, db *gorm.DB, tenantID uuid.UUID, date time.Time, baseline, promoted int64, promotionID *uuid.UUID) {
	t.Helper()

	row := &models.POSData{
		ID:              uuid.New(),
		TenantID:        tenantID,
		RetailerID:      uuid.New(),
		ProductID:       uuid.New(),
		Date:            date,
		BaselineSales:   baseline,
		PromotedSales:   promoted,
		BaselineRevenue: decimal.NewFromInt(baseline * 4),
		PromotedRevenue: decimal.NewFromInt(promoted * 4),
		Units:           promoted,
		Price:           decimal.NewFromFloat(4.00),
		IsPromotion:     promotionID != nil,
		PromotionID:     promotionID,
	}
	require.NoError(t, db.Create(row).Error)
}

func validPOSRow(date time.Time) RowInput {
	return RowInput{
		RetailerID:      uuid.New(),
		ProductID:       uuid.New(),
		Date:            date,
		BaselineSales:   1000,
		PromotedSales:   1250,
		BaselineRevenue: decimal.NewFromInt(4000),
		PromotedRevenue: decimal.NewFromInt(5000),
		Units:           1250,
		Price:           decimal.NewFromFloat(4.00),
	}
}

func TestIngestPersistsBatch(t *testing.T) {
	db := setupPOSDB(t)
	svc := newPOSService(t, db)

	tenantID := uuid.New()
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	inserted, err := svc.Ingest(context.Background(), tenantID, []RowInput{
		validPOSRow(day),
		validPOSRow(day.AddDate(0, 0, 1)),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	var count int64
	require.NoError(t, db.Model(&models.POSData{}).Where("tenant_id = ?", tenantID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestIngestValidation(t *testing.T) {
	db := setupPOSDB(t)
	svc := newPOSService(t, db)
	day := time.Now().UTC()

	_, err := svc.Ingest(context.Background(), uuid.New(), nil)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	negativeSales := validPOSRow(day)
	negativeSales.PromotedSales = -5
	_, err = svc.Ingest(context.Background(), uuid.New(), []RowInput{negativeSales})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Contains(t, err.Error(), "row 0")

	negativeRevenue := validPOSRow(day)
	negativeRevenue.BaselineRevenue = decimal.NewFromInt(-100)
	_, err = svc.Ingest(context.Background(), uuid.New(), []RowInput{validPOSRow(day), negativeRevenue})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestPromotionLift(t *testing.T) {
	db := setupPOSDB(t)
	svc := newPOSService(t, db)

	tenantID := uuid.New()
	promotionID := uuid.New()
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	seedPOSRow(t, db, tenantID, day, 600, 750, &promotionID)
	seedPOSRow(t, db, tenantID, day.AddDate(0, 0, 1), 400, 500, &promotionID)
	seedPOSRow(t, db, tenantID, day, 900, 900, nil) // baseline-only noise

	lift, err := svc.PromotionLift(context.Background(), tenantID, promotionID)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), lift.BaselineSales)
	assert.Equal(t, int64(1250), lift.PromotedSales)
	assert.True(t, lift.BaselineRevenue.Equal(decimal.NewFromInt(4000)), "baseline revenue %s", lift.BaselineRevenue)
	assert.True(t, lift.PromotedRevenue.Equal(decimal.NewFromInt(5000)), "promoted revenue %s", lift.PromotedRevenue)
	assert.InDelta(t, 25.0, lift.LiftPercent, 0.0001)
}

func TestPromotionLiftNoRows(t *testing.T) {
	db := setupPOSDB(t)
	svc := newPOSService(t, db)

	lift, err := svc.PromotionLift(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, lift.BaselineSales)
	assert.Zero(t, lift.LiftPercent, "zero baseline yields zero lift")
}

func TestPeriodSummaryBucketsByFiscalQuarter(t *testing.T) {
	db := setupPOSDB(t)
	svc := newPOSService(t, db)

	tenantID := uuid.New()
	seedPOSRow(t, db, tenantID, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), 100, 120, nil)
	seedPOSRow(t, db, tenantID, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), 200, 260, nil)
	seedPOSRow(t, db, tenantID, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), 300, 330, nil)
	seedPOSRow(t, db, tenantID, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), 400, 480, nil)

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	buckets, err := svc.PeriodSummary(context.Background(), tenantID, from, to, 0)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	// January-start fiscal years label calendar 2024 as FY2025.
	assert.Equal(t, 2025, buckets[0].FiscalYear)
	assert.Equal(t, 1, buckets[0].Quarter)
	assert.True(t, buckets[0].BaselineRevenue.Equal(decimal.NewFromInt(1200)), "q1 baseline %s", buckets[0].BaselineRevenue)
	assert.Equal(t, int64(380), buckets[0].Units)

	assert.Equal(t, 2025, buckets[1].FiscalYear)
	assert.Equal(t, 3, buckets[1].Quarter)

	assert.Equal(t, 2026, buckets[2].FiscalYear)
	assert.Equal(t, 1, buckets[2].Quarter)
	assert.True(t, buckets[2].PromotedRevenue.Equal(decimal.NewFromInt(1920)))
}

func TestPeriodSummaryInvalidRange(t *testing.T) {
	db := setupPOSDB(t)
	svc := newPOSService(t, db)

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.PeriodSummary(context.Background(), uuid.New(), from, from.AddDate(0, -1, 0), 0)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestIncrementalVolume(t *testing.T) {
	db := setupPOSDB(t)
	repo := NewRepository(db)

	tenantID := uuid.New()
	promoA, promoB := uuid.New(), uuid.New()
	day := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	seedPOSRow(t, db, tenantID, day, 1000, 1250, &promoA)
	seedPOSRow(t, db, tenantID, day, 500, 600, &promoB)
	seedPOSRow(t, db, tenantID, day, 800, 800, nil)       // not promoted
	seedPOSRow(t, db, uuid.New(), day, 100, 900, &promoA) // other tenant

	total, err := repo.IncrementalVolume(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)
}
