package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Richyi/promosophia/pkg/enums"
)

// Retailer is a trade partner the tenant runs promotions with.
type Retailer struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID     uuid.UUID          `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:idx_retailers_tenant_code,priority:1"`
	Name         string             `gorm:"column:name;not null"`
	Code         string             `gorm:"column:code;not null;uniqueIndex:idx_retailers_tenant_code,priority:2"`
	Region       string             `gorm:"column:region;not null"`
	Channel      string             `gorm:"column:channel;not null"`
	Tier         enums.RetailerTier `gorm:"column:tier;type:retailer_tier;not null"`
	ContactEmail *string            `gorm:"column:contact_email"`
	ContactPhone *string            `gorm:"column:contact_phone"`
	IsActive     bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
