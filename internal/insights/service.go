package insights

import (
	"context"
	"fmt"
	"sort"
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

type deductionSummer interface {
	OutstandingExposure(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[enums.DeductionStatus]int64, error)
}

type goalLister interface {
	ListByPeriod(ctx context.Context, tenantID uuid.UUID, period string) ([]models.CompanyGoal, error)
}

// Severity ranks how urgently an insight needs attention.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityAlert   Severity = "alert"
)

// Insight is one generated observation about the tenant's trade activity.
type Insight struct {
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Score    float64  `json:"score"`
}

// Service generates ranked insights from live aggregates. Deterministic; no
// model calls.
type Service interface {
	Generate(ctx context.Context, tenantID uuid.UUID, period, currency string, fiscalStartMonth int) ([]Insight, error)
}

type service struct {
	promotions promotionLister
	deductions deductionSummer
	goals      goalLister
	now        func() time.Time
}

// NewService wires the insight generator.
func NewService(promotions promotionLister, deductions deductionSummer, goalRepo goalLister) (Service, error) {
	if promotions == nil || deductions == nil || goalRepo == nil {
		return nil, fmt.Errorf("all insight dependencies are required")
	}
	return &service{
		promotions: promotions,
		deductions: deductions,
		goals:      goalRepo,
		now:        time.Now,
	}, nil
}

func (s *service) Generate(ctx context.Context, tenantID uuid.UUID, period, currency string, fiscalStartMonth int) ([]Insight, error) {
	var out []Insight

	promos, err := s.promotions.ListByStatuses(ctx, tenantID,
		enums.PromotionStatusActive, enums.PromotionStatusCompleted,
	)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list promotions")
	}
	if insight := bestPerformer(promos); insight != nil {
		out = append(out, *insight)
	}
	if insight := worstPerformer(promos); insight != nil {
		out = append(out, *insight)
	}

	exposure, err := s.deductions.OutstandingExposure(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum exposure")
	}
	counts, err := s.deductions.CountByStatus(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count deductions")
	}
	if insight := exposureInsight(exposure, counts, currency); insight != nil {
		out = append(out, *insight)
	}

	goalRows, err := s.goals.ListByPeriod(ctx, tenantID, period)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list goals")
	}
	out = append(out, goalPacing(goalRows, s.now(), fiscalStartMonth)...)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func bestPerformer(promos []models.TradePromotion) *Insight {
	var best *models.TradePromotion
	for i := range promos {
		p := &promos[i]
		if p.ROI == nil {
			continue
		}
		if best == nil || *p.ROI > *best.ROI {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	return &Insight{
		Category: "performance",
		Severity: SeverityInfo,
		Title:    fmt.Sprintf("%s is your top performer", best.Name),
		Body: fmt.Sprintf("%s is returning %s ROI, the highest across running and completed promotions. Consider extending or replicating this mechanic.",
			best.Name, promomath.FormatPercent(*best.ROI, 1)),
		Score: 0.6 + clamp01(*best.ROI),
	}
}

func worstPerformer(promos []models.TradePromotion) *Insight {
	var worst *models.TradePromotion
	for i := range promos {
		p := &promos[i]
		if p.ROI == nil {
			continue
		}
		if worst == nil || *p.ROI < *worst.ROI {
			worst = p
		}
	}
	if worst == nil || *worst.ROI >= 0 {
		return nil
	}
	return &Insight{
		Category: "performance",
		Severity: SeverityWarning,
		Title:    fmt.Sprintf("%s is running at a loss", worst.Name),
		Body: fmt.Sprintf("%s has a %s ROI. Review its discount depth or cancel the remainder of the run.",
			worst.Name, promomath.FormatPercent(*worst.ROI, 1)),
		Score: 0.8 + clamp01(-*worst.ROI),
	}
}

func exposureInsight(exposure decimal.Decimal, counts map[enums.DeductionStatus]int64, currency string) *Insight {
	if !exposure.IsPositive() {
		return nil
	}
	open := counts[enums.DeductionStatusOpen]
	contested := counts[enums.DeductionStatusContested]
	severity := SeverityInfo
	score := 0.5
	if contested > 0 || open >= 3 {
		severity = SeverityWarning
		score = 0.75
	}
	return &Insight{
		Category: "deductions",
		Severity: severity,
		Title:    fmt.Sprintf("%s in unresolved deductions", promomath.FormatCurrency(exposure, currency)),
		Body: fmt.Sprintf("You have %d open and %d contested deductions outstanding. Clearing them reduces revenue leakage.",
			open, contested),
		Score: score,
	}
}

func goalPacing(goalRows []models.CompanyGoal, now time.Time, fiscalStartMonth int) []Insight {
	elapsed := promomath.FiscalElapsed(now, fiscalStartMonth)
	var out []Insight
	for _, g := range goalRows {
		progress := promomath.Progress(g.Current, g.Target)
		if elapsed <= 0 {
			continue
		}
		pace := progress / elapsed
		if pace >= 0.9 {
			continue
		}
		out = append(out, Insight{
			Category: "goals",
			Severity: SeverityAlert,
			Title:    fmt.Sprintf("%s goal for %s is behind pace", g.Type, g.Period),
			Body: fmt.Sprintf("Progress is %s with %s of the fiscal year elapsed. Current trajectory will miss the target.",
				promomath.FormatPercent(progress, 0), promomath.FormatPercent(elapsed, 0)),
			Score: 0.9 - pace/10,
		})
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
