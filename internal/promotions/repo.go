package promotions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	"github.com/Richyi/promosophia/pkg/pagination"
)

// Repository handles trade promotion persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to promotion operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists the promotion and its initial history row atomically.
func (r *Repository) Create(ctx context.Context, promotion *models.TradePromotion, history *models.PromotionHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(promotion).Error; err != nil {
			return err
		}
		history.PromotionID = promotion.ID
		return tx.Create(history).Error
	})
}

// FindByID loads a promotion with its change history, scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.TradePromotion, error) {
	var promotion models.TradePromotion
	err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&promotion).Error
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

// ListFilter narrows promotion listings.
type ListFilter struct {
	Status     *enums.PromotionStatus
	RetailerID *uuid.UUID
}

// List returns a cursor page of the tenant's promotions, newest first.
func (r *Repository) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter, params pagination.Params) ([]models.TradePromotion, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.RetailerID != nil {
		query = query.Where("retailer_id = ?", *filter.RetailerID)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.TradePromotion
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByStatuses returns all tenant promotions in the given statuses. The
// dashboard and insights aggregates use this.
func (r *Repository) ListByStatuses(ctx context.Context, tenantID uuid.UUID, statuses ...enums.PromotionStatus) ([]models.TradePromotion, error) {
	var rows []models.TradePromotion
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ?", tenantID, statuses).
		Order("start_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the promotion and appends a history row atomically.
func (r *Repository) Update(ctx context.Context, promotion *models.TradePromotion, history *models.PromotionHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("History").Save(promotion).Error; err != nil {
			return err
		}
		history.PromotionID = promotion.ID
		return tx.Create(history).Error
	})
}
