package retailers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db"
	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/pagination"
)

// CreateInput carries the fields accepted when creating a retailer.
type CreateInput struct {
	Name         string             `json:"name" validate:"required"`
	Code         string             `json:"code" validate:"required"`
	Region       string             `json:"region" validate:"required"`
	Channel      string             `json:"channel" validate:"required"`
	Tier         enums.RetailerTier `json:"tier" validate:"required"`
	ContactEmail *string            `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string            `json:"contact_phone,omitempty"`
}

// UpdateInput carries the mutable retailer fields.
type UpdateInput struct {
	Name         *string             `json:"name,omitempty"`
	Region       *string             `json:"region,omitempty"`
	Channel      *string             `json:"channel,omitempty"`
	Tier         *enums.RetailerTier `json:"tier,omitempty"`
	ContactEmail *string             `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string             `json:"contact_phone,omitempty"`
}

// Service exposes tenant-scoped retailer management.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Retailer, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Retailer, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (pagination.Page[models.Retailer], error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*models.Retailer, error)
	Deactivate(ctx context.Context, tenantID, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds a retailer service over the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("retailer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Retailer, error) {
	if !input.Tier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid retailer tier")
	}
	retailer := &models.Retailer{
		TenantID:     tenantID,
		Name:         strings.TrimSpace(input.Name),
		Code:         strings.ToUpper(strings.TrimSpace(input.Code)),
		Region:       input.Region,
		Channel:      input.Channel,
		Tier:         input.Tier,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, retailer); err != nil {
		if db.IsUniqueViolation(err, "idx_retailers_tenant_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "code already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create retailer")
	}
	return retailer, nil
}

func (s *service) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Retailer, error) {
	retailer, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "retailer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load retailer")
	}
	return retailer, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (pagination.Page[models.Retailer], error) {
	rows, err := s.repo.List(ctx, tenantID, params)
	if err != nil {
		return pagination.Page[models.Retailer]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list retailers")
	}
	return pagination.NewPage(rows, params.Limit, func(r models.Retailer) pagination.Cursor {
		return pagination.Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
	}), nil
}

func (s *service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*models.Retailer, error) {
	retailer, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		retailer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Region != nil {
		retailer.Region = *input.Region
	}
	if input.Channel != nil {
		retailer.Channel = *input.Channel
	}
	if input.Tier != nil {
		if !input.Tier.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid retailer tier")
		}
		retailer.Tier = *input.Tier
	}
	if input.ContactEmail != nil {
		retailer.ContactEmail = input.ContactEmail
	}
	if input.ContactPhone != nil {
		retailer.ContactPhone = input.ContactPhone
	}

	if err := s.repo.Update(ctx, retailer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update retailer")
	}
	return retailer, nil
}

func (s *service) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "retailer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate retailer")
	}
	return nil
}
