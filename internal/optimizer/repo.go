package optimizer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
)

// Repository handles scenario persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to scenario operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new scenario row.
func (r *Repository) Create(ctx context.Context, scenario *models.Scenario) error {
	return r.db.WithContext(ctx).Create(scenario).Error
}

// FindByID loads a scenario scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Scenario, error) {
	var scenario models.Scenario
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&scenario).Error
	if err != nil {
		return nil, err
	}
	return &scenario, nil
}

// List returns the tenant's scenarios, newest first.
func (r *Repository) List(ctx context.Context, tenantID uuid.UUID) ([]models.Scenario, error) {
	var rows []models.Scenario
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
