package pos

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Richyi/promosophia/pkg/db/models"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/promomath"
)

// RowInput is one POS record in an ingestion batch.
type RowInput struct {
	RetailerID      uuid.UUID       `json:"retailer_id" validate:"required"`
	ProductID       uuid.UUID       `json:"product_id" validate:"required"`
	Date            time.Time       `json:"date" validate:"required"`
	BaselineSales   int64           `json:"baseline_sales"`
	PromotedSales   int64           `json:"promoted_sales"`
	BaselineRevenue decimal.Decimal `json:"baseline_revenue"`
	PromotedRevenue decimal.Decimal `json:"promoted_revenue"`
	Units           int64           `json:"units"`
	Price           decimal.Decimal `json:"price"`
	IsPromotion     bool            `json:"is_promotion"`
	PromotionID     *uuid.UUID      `json:"promotion_id,omitempty"`
}

// LiftDTO reports promoted vs baseline performance for one promotion.
type LiftDTO struct {
	PromotionID     uuid.UUID       `json:"promotion_id"`
	BaselineSales   int64           `json:"baseline_sales"`
	PromotedSales   int64           `json:"promoted_sales"`
	BaselineRevenue decimal.Decimal `json:"baseline_revenue"`
	PromotedRevenue decimal.Decimal `json:"promoted_revenue"`
	LiftPercent     float64         `json:"lift_percent"`
}

// PeriodBucket aggregates POS revenue into one fiscal quarter.
type PeriodBucket struct {
	FiscalYear      int             `json:"fiscal_year"`
	Quarter         int             `json:"quarter"`
	BaselineRevenue decimal.Decimal `json:"baseline_revenue"`
	PromotedRevenue decimal.Decimal `json:"promoted_revenue"`
	Units           int64           `json:"units"`
}

// Service exposes POS ingestion and lift aggregates.
type Service interface {
	Ingest(ctx context.Context, tenantID uuid.UUID, rows []RowInput) (int, error)
	PromotionLift(ctx context.Context, tenantID, promotionID uuid.UUID) (*LiftDTO, error)
	PeriodSummary(ctx context.Context, tenantID uuid.UUID, from, to time.Time, fiscalStartMonth int) ([]PeriodBucket, error)
}

type service struct {
	repo *Repository
}

// NewService builds a POS service over the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pos repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Ingest(ctx context.Context, tenantID uuid.UUID, rows []RowInput) (int, error) {
	if len(rows) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "batch is empty")
	}
	records := make([]models.POSData, 0, len(rows))
	for i, row := range rows {
		if row.BaselineSales < 0 || row.PromotedSales < 0 || row.Units < 0 {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("row %d: negative sales figures", i))
		}
		if row.BaselineRevenue.IsNegative() || row.PromotedRevenue.IsNegative() {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("row %d: negative revenue", i))
		}
		records = append(records, models.POSData{
			TenantID:        tenantID,
			RetailerID:      row.RetailerID,
			ProductID:       row.ProductID,
			Date:            row.Date,
			BaselineSales:   row.BaselineSales,
			PromotedSales:   row.PromotedSales,
			BaselineRevenue: row.BaselineRevenue,
			PromotedRevenue: row.PromotedRevenue,
			Units:           row.Units,
			Price:           row.Price,
			IsPromotion:     row.IsPromotion,
			PromotionID:     row.PromotionID,
		})
	}
	if err := s.repo.InsertBatch(ctx, records); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert pos batch")
	}
	return len(records), nil
}

func (s *service) PromotionLift(ctx context.Context, tenantID, promotionID uuid.UUID) (*LiftDTO, error) {
	agg, err := s.repo.AggregateForPromotion(ctx, tenantID, promotionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate pos rows")
	}
	return &LiftDTO{
		PromotionID:     promotionID,
		BaselineSales:   agg.BaselineSales,
		PromotedSales:   agg.PromotedSales,
		BaselineRevenue: agg.BaselineRevenue,
		PromotedRevenue: agg.PromotedRevenue,
		LiftPercent:     promomath.Lift(float64(agg.PromotedSales), float64(agg.BaselineSales)) * 100,
	}, nil
}

// PeriodSummary buckets POS rows by fiscal year and quarter using the tenant's
// fiscal start month.
func (s *service) PeriodSummary(ctx context.Context, tenantID uuid.UUID, from, to time.Time, fiscalStartMonth int) ([]PeriodBucket, error) {
	if to.Before(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date range")
	}
	rows, err := s.repo.ListRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pos rows")
	}

	type key struct {
		year    int
		quarter int
	}
	buckets := map[key]*PeriodBucket{}
	for i := range rows {
		row := &rows[i]
		k := key{
			year:    promomath.FiscalYear(row.Date, fiscalStartMonth),
			quarter: promomath.Quarter(row.Date),
		}
		bucket, ok := buckets[k]
		if !ok {
			bucket = &PeriodBucket{FiscalYear: k.year, Quarter: k.quarter}
			buckets[k] = bucket
		}
		bucket.BaselineRevenue = bucket.BaselineRevenue.Add(row.BaselineRevenue)
		bucket.PromotedRevenue = bucket.PromotedRevenue.Add(row.PromotedRevenue)
		bucket.Units += row.Units
	}

	out := make([]PeriodBucket, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FiscalYear != out[j].FiscalYear {
			return out[i].FiscalYear < out[j].FiscalYear
		}
		return out[i].Quarter < out[j].Quarter
	})
	return out, nil
}
