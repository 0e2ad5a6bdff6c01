package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/Richyi/promosophia/pkg/db/types"
	"github.com/Richyi/promosophia/pkg/enums"
)

// TradePromotion is a retailer-specific, time-bounded promotion. Fractions use
// the 0.15 = 15% convention; LiftPercent is a whole-number percent.
type TradePromotion struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID             `gorm:"column:tenant_id;type:uuid;not null;index"`
	RetailerID  uuid.UUID             `gorm:"column:retailer_id;type:uuid;not null"`
	Name        string                `gorm:"column:name;not null"`
	Description *string               `gorm:"column:description"`
	Status      enums.PromotionStatus `gorm:"column:status;type:promotion_status;not null;default:'Draft'"`
	ProductIDs  dbtypes.UUIDArray     `gorm:"column:product_ids;type:uuid[];not null;default:'{}'"`
	StartDate   time.Time             `gorm:"column:start_date;not null"`
	EndDate     time.Time             `gorm:"column:end_date;not null"`

	MechanicType        enums.MechanicType `gorm:"column:mechanic_type;type:mechanic_type;not null"`
	MechanicDescription string             `gorm:"column:mechanic_description;not null"`
	BuyQuantity         *int               `gorm:"column:buy_quantity"`
	GetQuantity         *int               `gorm:"column:get_quantity"`
	MinimumPurchase     *float64           `gorm:"column:minimum_purchase;type:numeric(12,2)"`
	MaximumDiscount     *float64           `gorm:"column:maximum_discount;type:numeric(12,2)"`
	DiscountDepth       float64            `gorm:"column:discount_depth;type:numeric(6,4);not null"`

	PlannedSpend   decimal.Decimal  `gorm:"column:planned_spend;type:numeric(14,2);not null"`
	ActualSpend    *decimal.Decimal `gorm:"column:actual_spend;type:numeric(14,2)"`
	PlannedVolume  int64            `gorm:"column:planned_volume;not null"`
	ActualVolume   *int64           `gorm:"column:actual_volume"`
	PlannedRevenue decimal.Decimal  `gorm:"column:planned_revenue;type:numeric(14,2);not null"`
	ActualRevenue  *decimal.Decimal `gorm:"column:actual_revenue;type:numeric(14,2)"`
	PlannedMargin  float64          `gorm:"column:planned_margin;type:numeric(6,4);not null"`
	ActualMargin   *float64         `gorm:"column:actual_margin;type:numeric(6,4)"`
	ROI            *float64         `gorm:"column:roi;type:numeric(10,4)"`
	LiftPercent    *float64         `gorm:"column:lift_percent;type:numeric(8,2)"`

	CreatedBy  uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovedAt *time.Time `gorm:"column:approved_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	History []PromotionHistory `gorm:"foreignKey:PromotionID;constraint:OnDelete:CASCADE"`
}

// PromotionHistory is an append-only log of field-level promotion changes.
type PromotionHistory struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PromotionID uuid.UUID       `gorm:"column:promotion_id;type:uuid;not null;index"`
	Action      string          `gorm:"column:action;not null"`
	OldValues   dbtypes.JSONMap `gorm:"column:old_values;type:jsonb"`
	NewValues   dbtypes.JSONMap `gorm:"column:new_values;type:jsonb"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null"`
	Reason      *string         `gorm:"column:reason"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
