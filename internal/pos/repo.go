package pos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
)

// Repository handles POS row persistence and aggregates.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to POS operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InsertBatch writes POS rows in chunks.
func (r *Repository) InsertBatch(ctx context.Context, rows []models.POSData) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, 500).Error
}

// ListRange returns the tenant's POS rows within the date range, oldest first.
func (r *Repository) ListRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.POSData, error) {
	var rows []models.POSData
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND date >= ? AND date <= ?", tenantID, from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PromotionAggregate sums baseline vs promoted figures for one promotion.
type PromotionAggregate struct {
	BaselineSales   int64
	PromotedSales   int64
	BaselineRevenue decimal.Decimal
	PromotedRevenue decimal.Decimal
	Units           int64
}

// AggregateForPromotion rolls up POS rows attached to the promotion.
func (r *Repository) AggregateForPromotion(ctx context.Context, tenantID, promotionID uuid.UUID) (*PromotionAggregate, error) {
	var agg PromotionAggregate
	err := r.db.WithContext(ctx).
		Model(&models.POSData{}).
		Select(`
			COALESCE(SUM(baseline_sales), 0) AS baseline_sales,
			COALESCE(SUM(promoted_sales), 0) AS promoted_sales,
			COALESCE(SUM(baseline_revenue), 0) AS baseline_revenue,
			COALESCE(SUM(promoted_revenue), 0) AS promoted_revenue,
			COALESCE(SUM(units), 0) AS units`).
		Where("tenant_id = ? AND promotion_id = ?", tenantID, promotionID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// IncrementalVolume sums promoted minus baseline sales across all promoted rows.
func (r *Repository) IncrementalVolume(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.POSData{}).
		Select("COALESCE(SUM(promoted_sales - baseline_sales), 0)").
		Where("tenant_id = ? AND is_promotion = true", tenantID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
