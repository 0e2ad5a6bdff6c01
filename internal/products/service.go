package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db"
	"github.com/Richyi/promosophia/pkg/db/models"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/pagination"
	"github.com/Richyi/promosophia/pkg/promomath"
	"github.com/Richyi/promosophia/pkg/types"
)

// CreateInput carries the fields accepted when creating a product.
type CreateInput struct {
	CategoryID  uuid.UUID       `json:"category_id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	SKU         string          `json:"sku" validate:"required"`
	Subcategory *string         `json:"subcategory,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Cost        decimal.Decimal `json:"cost"`
	Unit        string          `json:"unit"`
}

// UpdateInput carries the mutable product fields. CategoryID distinguishes
// an omitted field from an explicit null.
type UpdateInput struct {
	Name        *string            `json:"name,omitempty"`
	CategoryID  types.NullableUUID `json:"category_id,omitempty"`
	Subcategory *string            `json:"subcategory,omitempty"`
	BasePrice   *decimal.Decimal   `json:"base_price,omitempty"`
	Cost        *decimal.Decimal   `json:"cost,omitempty"`
	Unit        *string            `json:"unit,omitempty"`
}

// CategoryInput carries the fields accepted when creating a category.
type CategoryInput struct {
	Name     string     `json:"name" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// Service exposes tenant-scoped product catalog management.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Product, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (pagination.Page[models.Product], error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Deactivate(ctx context.Context, tenantID, id uuid.UUID) error
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]models.ProductCategory, error)
	CreateCategory(ctx context.Context, tenantID uuid.UUID, input CategoryInput) (*models.ProductCategory, error)
}

type service struct {
	repo *Repository
}

// NewService builds a product service over the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Product, error) {
	if input.BasePrice.IsNegative() || input.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price and cost must be non-negative")
	}
	if _, err := s.repo.FindCategory(ctx, tenantID, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "units"
	}

	product := &models.Product{
		TenantID:    tenantID,
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		SKU:         strings.TrimSpace(input.SKU),
		Subcategory: input.Subcategory,
		BasePrice:   input.BasePrice,
		Cost:        input.Cost,
		Margin:      unitMargin(input.BasePrice, input.Cost),
		Unit:        unit,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "idx_products_tenant_sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return product, nil
}

func (s *service) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (pagination.Page[models.Product], error) {
	rows, err := s.repo.List(ctx, tenantID, params)
	if err != nil {
		return pagination.Page[models.Product]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return pagination.NewPage(rows, params.Limit, func(p models.Product) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	}), nil
}

func (s *service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	product, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.CategoryID.Valid {
		if input.CategoryID.Value == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be cleared")
		}
		if _, err := s.repo.FindCategory(ctx, tenantID, *input.CategoryID.Value); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
		}
		product.CategoryID = *input.CategoryID.Value
	}
	if input.Subcategory != nil {
		product.Subcategory = input.Subcategory
	}
	if input.BasePrice != nil {
		if input.BasePrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		product.BasePrice = *input.BasePrice
	}
	if input.Cost != nil {
		if input.Cost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost must be non-negative")
		}
		product.Cost = *input.Cost
	}
	if input.Unit != nil {
		product.Unit = strings.TrimSpace(*input.Unit)
	}
	product.Margin = unitMargin(product.BasePrice, product.Cost)

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return product, nil
}

func (s *service) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate product")
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]models.ProductCategory, error) {
	rows, err := s.repo.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return rows, nil
}

func (s *service) CreateCategory(ctx context.Context, tenantID uuid.UUID, input CategoryInput) (*models.ProductCategory, error) {
	if input.ParentID != nil {
		if _, err := s.repo.FindCategory(ctx, tenantID, *input.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown parent category")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load parent category")
		}
	}
	category := &models.ProductCategory{
		TenantID: tenantID,
		Name:     strings.TrimSpace(input.Name),
		ParentID: input.ParentID,
		IsActive: true,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return category, nil
}

func unitMargin(price, cost decimal.Decimal) float64 {
	p, _ := price.Float64()
	c, _ := cost.Float64()
	return promomath.Margin(p, c)
}
