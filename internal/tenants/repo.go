package tenants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
)

// Repository handles tenant and tenant-settings persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to tenant operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a tenant with its settings.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Preload("Settings").
		First(&tenant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// List returns every tenant ordered by name. Only the platform admin surface
// uses this.
func (r *Repository) List(ctx context.Context) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.WithContext(ctx).
		Preload("Settings").
		Order("name ASC").
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// UpdateSettings overwrites the mutable settings fields for the tenant.
func (r *Repository) UpdateSettings(ctx context.Context, tenantID uuid.UUID, settings *models.TenantSettings) error {
	res := r.db.WithContext(ctx).
		Model(&models.TenantSettings{}).
		Where("tenant_id = ?", tenantID).
		Updates(map[string]any{
			"currency":          settings.Currency,
			"fiscal_year_start": settings.FiscalYearStart,
			"default_margin":    settings.DefaultMargin,
			"timezone":          settings.Timezone,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
