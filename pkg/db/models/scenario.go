package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/Richyi/promosophia/pkg/db/types"
	"github.com/Richyi/promosophia/pkg/enums"
)

// Scenario persists an optimization run: the requested goal, budget and
// constraints plus the predicted result returned to the caller.
type Scenario struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID              `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name        string                 `gorm:"column:name;not null"`
	Description *string                `gorm:"column:description"`
	Goal        enums.OptimizationGoal `gorm:"column:goal;type:goal_type;not null"`
	Budget      float64                `gorm:"column:budget;type:numeric(14,2);not null"`
	Constraints dbtypes.JSONMap        `gorm:"column:constraints;type:jsonb;not null"`
	Result      dbtypes.JSONMap        `gorm:"column:result;type:jsonb"`
	IsActive    bool                   `gorm:"column:is_active;not null;default:true"`
	CreatedBy   uuid.UUID              `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
