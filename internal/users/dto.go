package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
)

// UserDTO is the API-facing shape of a user.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	TenantID    uuid.UUID      `json:"tenant_id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Role        enums.UserRole `json:"role"`
	AvatarURL   *string        `json:"avatar_url,omitempty"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ToDTO maps the model onto its API shape.
func ToDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		TenantID:    user.TenantID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		AvatarURL:   user.AvatarURL,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
