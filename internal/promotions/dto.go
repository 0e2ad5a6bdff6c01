package promotions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Richyi/promosophia/pkg/enums"
)

// CreateInput carries the fields accepted when drafting a promotion.
type CreateInput struct {
	RetailerID          uuid.UUID          `json:"retailer_id" validate:"required"`
	Name                string             `json:"name" validate:"required"`
	Description         *string            `json:"description,omitempty"`
	ProductIDs          []uuid.UUID        `json:"product_ids" validate:"required,min=1"`
	StartDate           time.Time          `json:"start_date" validate:"required"`
	EndDate             time.Time          `json:"end_date" validate:"required"`
	MechanicType        enums.MechanicType `json:"mechanic_type" validate:"required"`
	MechanicDescription string             `json:"mechanic_description" validate:"required"`
	BuyQuantity         *int               `json:"buy_quantity,omitempty"`
	GetQuantity         *int               `json:"get_quantity,omitempty"`
	MinimumPurchase     *float64           `json:"minimum_purchase,omitempty"`
	MaximumDiscount     *float64           `json:"maximum_discount,omitempty"`
	DiscountDepth       float64            `json:"discount_depth"`
	PlannedSpend        decimal.Decimal    `json:"planned_spend"`
	PlannedVolume       int64              `json:"planned_volume"`
	PlannedRevenue      decimal.Decimal    `json:"planned_revenue"`
	PlannedMargin       float64            `json:"planned_margin"`
}

// UpdateInput carries the fields editable while a promotion is still a plan.
type UpdateInput struct {
	Name                *string          `json:"name,omitempty"`
	Description         *string          `json:"description,omitempty"`
	ProductIDs          []uuid.UUID      `json:"product_ids,omitempty"`
	StartDate           *time.Time       `json:"start_date,omitempty"`
	EndDate             *time.Time       `json:"end_date,omitempty"`
	MechanicDescription *string          `json:"mechanic_description,omitempty"`
	DiscountDepth       *float64         `json:"discount_depth,omitempty"`
	PlannedSpend        *decimal.Decimal `json:"planned_spend,omitempty"`
	PlannedVolume       *int64           `json:"planned_volume,omitempty"`
	PlannedRevenue      *decimal.Decimal `json:"planned_revenue,omitempty"`
	PlannedMargin       *float64         `json:"planned_margin,omitempty"`
}

// ActualsInput records observed performance once a promotion runs.
type ActualsInput struct {
	ActualSpend   decimal.Decimal `json:"actual_spend"`
	ActualRevenue decimal.Decimal `json:"actual_revenue"`
	ActualVolume  int64           `json:"actual_volume"`
	ActualMargin  *float64        `json:"actual_margin,omitempty"`
	LiftPercent   *float64        `json:"lift_percent,omitempty"`
}

// Action names a promotion lifecycle transition.
type Action string

const (
	ActionSubmit   Action = "submit"
	ActionApprove  Action = "approve"
	ActionActivate Action = "activate"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionArchive  Action = "archive"
)

// Target returns the status this action moves a promotion into.
func (a Action) Target() (enums.PromotionStatus, bool) {
	switch a {
	case ActionSubmit:
		return enums.PromotionStatusPlanned, true
	case ActionApprove:
		return enums.PromotionStatusApproved, true
	case ActionActivate:
		return enums.PromotionStatusActive, true
	case ActionComplete:
		return enums.PromotionStatusCompleted, true
	case ActionCancel:
		return enums.PromotionStatusCancelled, true
	case ActionArchive:
		return enums.PromotionStatusArchived, true
	default:
		return "", false
	}
}
