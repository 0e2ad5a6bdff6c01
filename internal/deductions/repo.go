package deductions

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	"github.com/Richyi/promosophia/pkg/pagination"
)

// Repository handles deduction persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to deduction operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new deduction row.
func (r *Repository) Create(ctx context.Context, deduction *models.Deduction) error {
	return r.db.WithContext(ctx).Create(deduction).Error
}

// FindByID loads a deduction scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Deduction, error) {
	var deduction models.Deduction
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&deduction).Error
	if err != nil {
		return nil, err
	}
	return &deduction, nil
}

// ListFilter narrows deduction listings.
type ListFilter struct {
	Status     *enums.DeductionStatus
	RetailerID *uuid.UUID
}

// List returns a cursor page of the tenant's deductions, newest first.
func (r *Repository) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter, params pagination.Params) ([]models.Deduction, error) {
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

	var rows []models.Deduction
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the mutable deduction fields.
func (r *Repository) Update(ctx context.Context, deduction *models.Deduction) error {
	return r.db.WithContext(ctx).Save(deduction).Error
}

// OutstandingExposure sums Open, Pending, and Contested amounts for the tenant.
func (r *Repository) OutstandingExposure(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Deduction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND status <> ?", tenantID, enums.DeductionStatusCleared).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// CountByStatus returns deduction counts keyed by status for the tenant.
func (r *Repository) CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[enums.DeductionStatus]int64, error) {
	type row struct {
		Status enums.DeductionStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Deduction{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[enums.DeductionStatus]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}
