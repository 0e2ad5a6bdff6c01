package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/promomath"
)

type promotionLister interface {
	ListByStatuses(ctx context.Context, tenantID uuid.UUID, statuses ...enums.PromotionStatus) ([]models.TradePromotion, error)
}

type exposureSummer interface {
	OutstandingExposure(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
}

type goalLister interface {
	ListByPeriod(ctx context.Context, tenantID uuid.UUID, period string) ([]models.CompanyGoal, error)
}

type volumeSummer interface {
	IncrementalVolume(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// GoalProgress is one goal's progress snapshot on the dashboard.
type GoalProgress struct {
	Type     enums.OptimizationGoal `json:"type"`
	Target   float64                `json:"target"`
	Current  float64                `json:"current"`
	Progress float64                `json:"progress"`
}

// DashboardKPIs is the headline metric set for the dashboard landing page.
type DashboardKPIs struct {
	TotalROI            float64         `json:"total_roi"`
	TradeSpend          decimal.Decimal `json:"trade_spend"`
	TradeSpendDisplay   string          `json:"trade_spend_display"`
	IncrementalVolume   int64           `json:"incremental_volume"`
	DeductionExposure   decimal.Decimal `json:"deduction_exposure"`
	ExposureDisplay     string          `json:"exposure_display"`
	ActivePromotions    int             `json:"active_promotions"`
	UpcomingPromotions  int             `json:"upcoming_promotions"`
	CompletedPromotions int             `json:"completed_promotions"`
	GoalProgress        []GoalProgress  `json:"goal_progress"`
}

// Service assembles dashboard metrics from the domain repositories.
type Service interface {
	Dashboard(ctx context.Context, tenantID uuid.UUID, period, currency string) (*DashboardKPIs, error)
}

type service struct {
	promotions promotionLister
	deductions exposureSummer
	goals      goalLister
	pos        volumeSummer
	now        func() time.Time
}

// NewService wires the analytics service. All dependencies are required.
func NewService(promotions promotionLister, deductions exposureSummer, goalRepo goalLister, pos volumeSummer) (Service, error) {
	if promotions == nil || deductions == nil || goalRepo == nil || pos == nil {
		return nil, fmt.Errorf("all analytics dependencies are required")
	}
	return &service{
		promotions: promotions,
		deductions: deductions,
		goals:      goalRepo,
		pos:        pos,
		now:        time.Now,
	}, nil
}

// Dashboard computes the KPI set. ROI is aggregated across active and
// completed promotions from their actuals.
func (s *service) Dashboard(ctx context.Context, tenantID uuid.UUID, period, currency string) (*DashboardKPIs, error) {
	running, err := s.promotions.ListByStatuses(ctx, tenantID,
		enums.PromotionStatusActive, enums.PromotionStatusCompleted,
		enums.PromotionStatusApproved, enums.PromotionStatusPlanned,
	)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list promotions")
	}

	var (
		totalSpend   = decimal.Zero
		totalRevenue = decimal.Zero
		active       int
		upcoming     int
		completed    int
	)
	now := s.now()
	for i := range running {
		p := &running[i]
		switch p.Status {
		case enums.PromotionStatusActive:
			active++
		case enums.PromotionStatusCompleted:
			completed++
		case enums.PromotionStatusApproved, enums.PromotionStatusPlanned:
			if p.StartDate.After(now) {
				upcoming++
			}
		}
		if p.Status != enums.PromotionStatusActive && p.Status != enums.PromotionStatusCompleted {
			continue
		}
		if p.ActualSpend != nil {
			totalSpend = totalSpend.Add(*p.ActualSpend)
		} else {
			totalSpend = totalSpend.Add(p.PlannedSpend)
		}
		if p.ActualRevenue != nil {
			totalRevenue = totalRevenue.Add(*p.ActualRevenue)
		}
	}

	exposure, err := s.deductions.OutstandingExposure(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum exposure")
	}

	volume, err := s.pos.IncrementalVolume(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum incremental volume")
	}

	goalRows, err := s.goals.ListByPeriod(ctx, tenantID, period)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list goals")
	}
	progress := make([]GoalProgress, 0, len(goalRows))
	for _, g := range goalRows {
		progress = append(progress, GoalProgress{
			Type:     g.Type,
			Target:   g.Target,
			Current:  g.Current,
			Progress: promomath.Progress(g.Current, g.Target),
		})
	}

	revenue, _ := totalRevenue.Float64()
	spend, _ := totalSpend.Float64()

	return &DashboardKPIs{
		TotalROI:            promomath.ROI(revenue, spend),
		TradeSpend:          totalSpend,
		TradeSpendDisplay:   promomath.FormatCurrency(totalSpend, currency),
		IncrementalVolume:   volume,
		DeductionExposure:   exposure,
		ExposureDisplay:     promomath.FormatCurrency(exposure, currency),
		ActivePromotions:    active,
		UpcomingPromotions:  upcoming,
		CompletedPromotions: completed,
		GoalProgress:        progress,
	}, nil
}

