package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Richyi/promosophia/pkg/enums"
)

// User belongs to exactly one tenant at a time; a tenant switch reassigns
// TenantID rather than tracking multiple memberships.
type User struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID      `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:idx_users_tenant_email,priority:1"`
	Name        string         `gorm:"column:name;not null"`
	Email       string         `gorm:"column:email;not null;uniqueIndex:idx_users_tenant_email,priority:2"`
	Role        enums.UserRole `gorm:"column:role;type:user_role;not null"`
	AvatarURL   *string        `gorm:"column:avatar_url"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt *time.Time     `gorm:"column:last_login_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
