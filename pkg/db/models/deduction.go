package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Richyi/promosophia/pkg/enums"
)

// Deduction is a retailer-initiated charge-back, optionally tied to a promotion.
type Deduction struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID      uuid.UUID             `gorm:"column:tenant_id;type:uuid;not null;index"`
	RetailerID    uuid.UUID             `gorm:"column:retailer_id;type:uuid;not null"`
	PromotionID   *uuid.UUID            `gorm:"column:promotion_id;type:uuid"`
	Amount        decimal.Decimal       `gorm:"column:amount;type:numeric(14,2);not null"`
	Status        enums.DeductionStatus `gorm:"column:status;type:deduction_status;not null;default:'Open'"`
	Type          string                `gorm:"column:type;not null"`
	Reason        string                `gorm:"column:reason;not null"`
	InvoiceNumber *string               `gorm:"column:invoice_number"`
	Date          time.Time             `gorm:"column:date;not null"`
	DueDate       *time.Time            `gorm:"column:due_date"`
	ResolvedAt    *time.Time            `gorm:"column:resolved_at"`
	ResolvedBy    *uuid.UUID            `gorm:"column:resolved_by;type:uuid"`
	Notes         *string               `gorm:"column:notes"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
