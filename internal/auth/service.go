package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/internal/tenants"
	"github.com/Richyi/promosophia/internal/users"
	"github.com/Richyi/promosophia/pkg/auth"
	"github.com/Richyi/promosophia/pkg/auth/session"
	"github.com/Richyi/promosophia/pkg/config"
	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/logger"
)

type userRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateTenant(ctx context.Context, id, tenantID uuid.UUID) error
}

type tenantRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service implements login, logout, token refresh, and tenant switching.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*SessionDTO, error)
	Logout(ctx context.Context, accessID string) error
	Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error)
	SwitchTenant(ctx context.Context, claims *auth.AccessTokenClaims, tenantID uuid.UUID) (*SessionDTO, error)
	Me(ctx context.Context, userID uuid.UUID) (*MeDTO, error)
}

type service struct {
	users    userRepo
	tenants  tenantRepo
	sessions sessionManager
	jwtCfg   config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the auth service. All dependencies are required.
func NewService(users userRepo, tenants tenantRepo, sessions sessionManager, jwtCfg config.JWTConfig, logg *logger.Logger) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if tenants == nil {
		return nil, fmt.Errorf("tenant repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		users:    users,
		tenants:  tenants,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Login resolves the directory entry for the email and opens a session. Any
// non-empty password is accepted; identity here is directory-backed, not
// credential-backed.
func (s *service) Login(ctx context.Context, input LoginInput) (*SessionDTO, error) {
	if strings.TrimSpace(input.Password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}

	dto, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to stamp last login")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"user_id":   user.ID.String(),
		"tenant_id": user.TenantID.String(),
		"role":      user.Role.String(),
	}), "user logged in")
	return dto, nil
}

// Logout revokes the refresh session tied to the access token's jti. Revoking
// an already-absent session is not an error.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

// Refresh rotates the refresh token and issues a fresh access token carrying
// the same identity claims.
func (s *service) Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error) {
	claims, err := auth.ParseAccessTokenAllowExpired(s.jwtCfg, input.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, input.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	accessToken, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		Role:     claims.Role,
		JTI:      newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefresh}, nil
}

// SwitchTenant moves the caller into another tenant and reissues the session.
// Allowed when the caller already belongs to the tenant, is a platform admin,
// or their email domain matches the tenant's domain.
func (s *service) SwitchTenant(ctx context.Context, claims *auth.AccessTokenClaims, tenantID uuid.UUID) (*SessionDTO, error) {
	if claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing claims")
	}

	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tenant")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if !canSwitch(user, tenant) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot switch to this tenant")
	}

	if user.TenantID != tenant.ID {
		if err := s.users.UpdateTenant(ctx, user.ID, tenant.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reassign tenant")
		}
		user.TenantID = tenant.ID
	}

	// The old session dies so stale tenant claims cannot be refreshed back.
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}

	dto, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"user_id":   user.ID.String(),
		"tenant_id": tenant.ID.String(),
	}), "tenant switched")
	return dto, nil
}

// Me returns the caller's profile, tenant, and navigation sections.
func (s *service) Me(ctx context.Context, userID uuid.UUID) (*MeDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tenant")
	}
	return &MeDTO{
		User:        users.ToDTO(user),
		Tenant:      tenants.ToDTO(tenant),
		NavSections: enums.SectionsFor(user.Role),
	}, nil
}

func (s *service) openSession(ctx context.Context, user *models.User) (*SessionDTO, error) {
	accessID := session.NewAccessID()
	accessToken, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session")
	}

	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tenant")
	}

	return &SessionDTO{
		Tokens:      TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
		User:        users.ToDTO(user),
		Tenant:      tenants.ToDTO(tenant),
		NavSections: enums.SectionsFor(user.Role),
	}, nil
}

func canSwitch(user *models.User, tenant *models.Tenant) bool {
	if auth.CanAccessTenant(user, tenant.ID) {
		return true
	}
	if auth.HasPermission(user, enums.UserRoleSuperAdmin) {
		return true
	}
	if tenant.Domain == nil {
		return false
	}
	at := strings.LastIndex(user.Email, "@")
	if at < 0 {
		return false
	}
	return strings.EqualFold(user.Email[at+1:], *tenant.Domain)
}
