package tenants

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
)

// TenantDTO is the API-facing shape of a tenant with its settings.
type TenantDTO struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Domain    *string     `json:"domain,omitempty"`
	Industry  string      `json:"industry"`
	Size      string      `json:"size"`
	Settings  SettingsDTO `json:"settings"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SettingsDTO carries the tenant-level configuration knobs.
type SettingsDTO struct {
	Currency        string  `json:"currency"`
	FiscalYearStart int     `json:"fiscal_year_start"`
	DefaultMargin   float64 `json:"default_margin"`
	Timezone        string  `json:"timezone"`
}

// UpdateSettingsInput carries the fields a tenant admin may change.
// FiscalYearStart is a 0-indexed month.
type UpdateSettingsInput struct {
	Currency        string  `json:"currency" validate:"required,len=3"`
	FiscalYearStart int     `json:"fiscal_year_start" validate:"min=0,max=11"`
	DefaultMargin   float64 `json:"default_margin"`
	Timezone        string  `json:"timezone" validate:"required"`
}

// Service exposes tenant lookup and settings administration.
type Service interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*TenantDTO, error)
	List(ctx context.Context, actorRole enums.UserRole) ([]TenantDTO, error)
	UpdateSettings(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*TenantDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a tenant service over the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tenant repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, tenantID uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.repo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tenant")
	}
	dto := ToDTO(tenant)
	return &dto, nil
}

func (s *service) List(ctx context.Context, actorRole enums.UserRole) ([]TenantDTO, error) {
	if actorRole != enums.UserRoleSuperAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role")
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tenants")
	}
	out := make([]TenantDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) UpdateSettings(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*TenantDTO, error) {
	if input.DefaultMargin < 0 || input.DefaultMargin > 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "default margin must be between 0 and 1")
	}
	if _, err := time.LoadLocation(input.Timezone); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown timezone")
	}

	settings := &models.TenantSettings{
		Currency:        input.Currency,
		FiscalYearStart: input.FiscalYearStart,
		DefaultMargin:   input.DefaultMargin,
		Timezone:        input.Timezone,
	}
	if err := s.repo.UpdateSettings(ctx, tenantID, settings); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update settings")
	}
	return s.Get(ctx, tenantID)
}

// ToDTO maps the model onto its API shape.
func ToDTO(tenant *models.Tenant) TenantDTO {
	dto := TenantDTO{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Domain:    tenant.Domain,
		Industry:  tenant.Industry,
		Size:      tenant.Size,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
	if tenant.Settings != nil {
		dto.Settings = SettingsDTO{
			Currency:        tenant.Settings.Currency,
			FiscalYearStart: tenant.Settings.FiscalYearStart,
			DefaultMargin:   tenant.Settings.DefaultMargin,
			Timezone:        tenant.Settings.Timezone,
		}
	}
	return dto
}
