package auth

import (
	"github.com/google/uuid"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
)

// HasPermission reports whether the user may perform an action gated at the
// required role. A nil or unknown-role user never has permission.
func HasPermission(user *models.User, required enums.UserRole) bool {
	if user == nil {
		return false
	}
	return user.Role.AtLeast(required)
}

// CanAccessTenant reports whether the user's active tenant matches tenantID.
func CanAccessTenant(user *models.User, tenantID uuid.UUID) bool {
	if user == nil {
		return false
	}
	return user.TenantID == tenantID
}
