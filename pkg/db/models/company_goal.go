package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Richyi/promosophia/pkg/enums"
)

// CompanyGoal tracks target vs current progress for a named period ("FY2025").
// Revenue/Volume targets are absolute figures; Margin targets are fractions.
type CompanyGoal struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID              `gorm:"column:tenant_id;type:uuid;not null;index"`
	Type      enums.OptimizationGoal `gorm:"column:type;type:goal_type;not null"`
	Target    float64                `gorm:"column:target;type:numeric(16,4);not null"`
	Current   float64                `gorm:"column:current;type:numeric(16,4);not null;default:0"`
	Period    string                 `gorm:"column:period;not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
