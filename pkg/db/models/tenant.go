package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the top-level ownership boundary. Every other entity hangs off a
// tenant and no API surface may cross it.
type Tenant struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Domain    *string         `gorm:"column:domain"`
	Industry  string          `gorm:"column:industry;not null"`
	Size      string          `gorm:"column:size;not null"`
	Settings  *TenantSettings `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TenantSettings carries per-tenant configuration used by fiscal bucketing and
// display formatting. FiscalYearStart is a 0-indexed month.
type TenantSettings struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID        uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex"`
	Currency        string    `gorm:"column:currency;not null;default:'USD'"`
	FiscalYearStart int       `gorm:"column:fiscal_year_start;not null;default:0"`
	DefaultMargin   float64   `gorm:"column:default_margin;type:numeric(6,4);not null;default:0.35"`
	Timezone        string    `gorm:"column:timezone;not null;default:'America/New_York'"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
