package goals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
)

// Repository handles company goal persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to goal operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new goal row.
func (r *Repository) Create(ctx context.Context, goal *models.CompanyGoal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// FindByID loads a goal scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CompanyGoal, error) {
	var goal models.CompanyGoal
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListByPeriod returns the tenant's goals for a period, or all when period is
// empty.
func (r *Repository) ListByPeriod(ctx context.Context, tenantID uuid.UUID, period string) ([]models.CompanyGoal, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if period != "" {
		query = query.Where("period = ?", period)
	}
	var rows []models.CompanyGoal
	if err := query.Order("period DESC, type ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateCurrent overwrites the goal's progress figure.
func (r *Repository) UpdateCurrent(ctx context.Context, tenantID, id uuid.UUID, current float64) error {
	res := r.db.WithContext(ctx).
		Model(&models.CompanyGoal{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("current", current)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
