package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
)

// Service exposes tenant-scoped user administration.
type Service interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]UserDTO, error)
	Invite(ctx context.Context, tenantID uuid.UUID, input InviteInput) (*UserDTO, error)
	Deactivate(ctx context.Context, tenantID, userID uuid.UUID) error
}

// InviteInput captures the data required to add a user to the tenant.
type InviteInput struct {
	Name  string
	Email string
	Role  enums.UserRole
}

type service struct {
	repo *Repository
}

// NewService builds a user service over the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID) ([]UserDTO, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) Invite(ctx context.Context, tenantID uuid.UUID, input InviteInput) (*UserDTO, error) {
	if !strings.Contains(input.Email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	// SUPER_ADMIN is platform-level and never granted through tenant invites.
	if input.Role == enums.UserRoleSuperAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot invite super admins")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		TenantID: tenantID,
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Role:     input.Role,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_users_tenant_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	dto := ToDTO(user)
	return &dto, nil
}

func (s *service) Deactivate(ctx context.Context, tenantID, userID uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, tenantID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate user")
	}
	return nil
}
