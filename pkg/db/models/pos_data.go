package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POSData is a per-tenant, per-retailer, per-product, per-day sales record
// holding baseline vs promoted figures used for lift analysis.
type POSData struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID        uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	RetailerID      uuid.UUID       `gorm:"column:retailer_id;type:uuid;not null"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Date            time.Time       `gorm:"column:date;type:date;not null"`
	BaselineSales   int64           `gorm:"column:baseline_sales;not null"`
	PromotedSales   int64           `gorm:"column:promoted_sales;not null"`
	BaselineRevenue decimal.Decimal `gorm:"column:baseline_revenue;type:numeric(14,2);not null"`
	PromotedRevenue decimal.Decimal `gorm:"column:promoted_revenue;type:numeric(14,2);not null"`
	Units           int64           `gorm:"column:units;not null"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	IsPromotion     bool            `gorm:"column:is_promotion;not null;default:false"`
	PromotionID     *uuid.UUID      `gorm:"column:promotion_id;type:uuid"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
