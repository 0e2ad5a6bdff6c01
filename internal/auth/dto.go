package auth

import (
	"github.com/Richyi/promosophia/internal/tenants"
	"github.com/Richyi/promosophia/internal/users"
	"github.com/Richyi/promosophia/pkg/enums"
)

// LoginInput carries the credentials posted to the login endpoint.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries an expired access token plus its refresh token.
type RefreshInput struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// SwitchTenantInput names the tenant the caller wants to act in.
type SwitchTenantInput struct {
	TenantID string `json:"tenant_id" validate:"required,uuid"`
}

// TokenPair is an access/refresh token bundle.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionDTO is returned from login and tenant switches.
type SessionDTO struct {
	Tokens      TokenPair          `json:"tokens"`
	User        users.UserDTO      `json:"user"`
	Tenant      tenants.TenantDTO  `json:"tenant"`
	NavSections []enums.NavSection `json:"nav_sections"`
}

// MeDTO describes the authenticated caller.
type MeDTO struct {
	User        users.UserDTO      `json:"user"`
	Tenant      tenants.TenantDTO  `json:"tenant"`
	NavSections []enums.NavSection `json:"nav_sections"`
}
