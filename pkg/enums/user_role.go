package enums

import "fmt"

// UserRole represents a tenant-level permissions role.
type UserRole string

const (
	UserRoleSuperAdmin     UserRole = "SUPER_ADMIN"
	UserRoleTenantAdmin    UserRole = "TENANT_ADMIN"
	UserRoleExecutive      UserRole = "EXECUTIVE"
	UserRoleRevenueManager UserRole = "REVENUE_MANAGER"
	UserRoleAccountManager UserRole = "ACCOUNT_MANAGER"
	UserRoleFinance        UserRole = "FINANCE"
	UserRoleAnalyst        UserRole = "ANALYST"
)

var validUserRoles = []UserRole{
	UserRoleSuperAdmin,
	UserRoleTenantAdmin,
	UserRoleExecutive,
	UserRoleRevenueManager,
	UserRoleAccountManager,
	UserRoleFinance,
	UserRoleAnalyst,
}

// roleRanks is a strict total order: higher rank outranks lower.
var roleRanks = map[UserRole]int{
	UserRoleSuperAdmin:     7,
	UserRoleTenantAdmin:    6,
	UserRoleExecutive:      5,
	UserRoleRevenueManager: 4,
	UserRoleAccountManager: 3,
	UserRoleFinance:        2,
	UserRoleAnalyst:        1,
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	_, ok := roleRanks[u]
	return ok
}

// Rank returns the role's position in the privilege order; unknown roles rank 0.
func (u UserRole) Rank() int {
	return roleRanks[u]
}

// AtLeast reports whether the role outranks or equals the required role.
// Unknown roles never satisfy any requirement.
func (u UserRole) AtLeast(required UserRole) bool {
	if !u.IsValid() || !required.IsValid() {
		return false
	}
	return roleRanks[u] >= roleRanks[required]
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
