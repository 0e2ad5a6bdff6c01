package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
)

type stubPromotions struct {
	rows []models.TradePromotion
}

func (s *stubPromotions) ListByStatuses(_ context.Context, _ uuid.UUID, _ ...enums.PromotionStatus) ([]models.TradePromotion, error) {
	return s.rows, nil
}

type stubDeductions struct {
	exposure decimal.Decimal
}

func (s *stubDeductions) OutstandingExposure(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return s.exposure, nil
}

type stubGoals struct {
	rows []models.CompanyGoal
}

func (s *stubGoals) ListByPeriod(_ context.Context, _ uuid.UUID, _ string) ([]models.CompanyGoal, error) {
	return s.rows, nil
}

type stubPOS struct {
	volume int64
}

func (s *stubPOS) IncrementalVolume(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.volume, nil
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestDashboardKPIs(t *testing.T) {
	now := time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC)

	promos := []models.TradePromotion{
		{
			Status:        enums.PromotionStatusActive,
			PlannedSpend:  decimal.NewFromInt(25000),
			ActualSpend:   decPtr(24200),
			ActualRevenue: decPtr(44200),
			StartDate:     now.AddDate(0, 0, -10),
		},
		{
			Status:        enums.PromotionStatusCompleted,
			PlannedSpend:  decimal.NewFromInt(15000),
			ActualSpend:   decPtr(15200),
			ActualRevenue: decPtr(15675),
			StartDate:     now.AddDate(0, -1, 0),
		},
		{
			// Approved and starting later counts as upcoming but never
			// contributes spend.
			Status:       enums.PromotionStatusPlanned,
			PlannedSpend: decimal.NewFromInt(45000),
			StartDate:    now.AddDate(0, 1, 0),
		},
	}
	goals := []models.CompanyGoal{
		{Type: enums.GoalRevenue, Target: 5000000, Current: 3250000, Period: "FY2025"},
		{Type: enums.GoalMargin, Target: 0, Current: 0.39, Period: "FY2025"},
	}

	svc := &service{
		promotions: &stubPromotions{rows: promos},
		deductions: &stubDeductions{exposure: decimal.NewFromFloat(1700)},
		goals:      &stubGoals{rows: goals},
		pos:        &stubPOS{volume: 9500},
		now:        func() time.Time { return now },
	}

	kpis, err := svc.Dashboard(context.Background(), uuid.New(), "FY2025", "USD")
	require.NoError(t, err)

	// spend 24200+15200, revenue 44200+15675
	assert.True(t, kpis.TradeSpend.Equal(decimal.NewFromInt(39400)), "trade spend %s", kpis.TradeSpend)
	assert.InDelta(t, (59875.0-39400.0)/39400.0, kpis.TotalROI, 0.0001)
	assert.Equal(t, "$39,400", kpis.TradeSpendDisplay)
	assert.Equal(t, int64(9500), kpis.IncrementalVolume)
	assert.Equal(t, "$1,700", kpis.ExposureDisplay)
	assert.Equal(t, 1, kpis.ActivePromotions)
	assert.Equal(t, 1, kpis.UpcomingPromotions)
	assert.Equal(t, 1, kpis.CompletedPromotions)

	require.Len(t, kpis.GoalProgress, 2)
	assert.InDelta(t, 0.65, kpis.GoalProgress[0].Progress, 0.0001)
	assert.Zero(t, kpis.GoalProgress[1].Progress, "zero target yields zero progress")
}

func TestDashboardEmptyTenant(t *testing.T) {
	svc := &service{
		promotions: &stubPromotions{},
		deductions: &stubDeductions{exposure: decimal.Zero},
		goals:      &stubGoals{},
		pos:        &stubPOS{},
		now:        time.Now,
	}

	kpis, err := svc.Dashboard(context.Background(), uuid.New(), "", "USD")
	require.NoError(t, err)

	assert.Zero(t, kpis.TotalROI)
	assert.True(t, kpis.TradeSpend.IsZero())
	assert.Zero(t, kpis.ActivePromotions)
	assert.Empty(t, kpis.GoalProgress)
}

func TestDashboardFallsBackToPlannedSpend(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	promos := []models.TradePromotion{
		{
			Status:       enums.PromotionStatusActive,
			PlannedSpend: decimal.NewFromInt(5000),
			StartDate:    now.AddDate(0, 0, -2),
		},
	}
	svc := &service{
		promotions: &stubPromotions{rows: promos},
		deductions: &stubDeductions{exposure: decimal.Zero},
		goals:      &stubGoals{},
		pos:        &stubPOS{},
		now:        func() time.Time { return now },
	}

	kpis, err := svc.Dashboard(context.Background(), uuid.New(), "", "USD")
	require.NoError(t, err)
	assert.True(t, kpis.TradeSpend.Equal(decimal.NewFromInt(5000)))
	// No actual revenue recorded, so ROI is a full loss on the spend.
	assert.InDelta(t, -1.0, kpis.TotalROI, 0.0001)
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, &stubDeductions{}, &stubGoals{}, &stubPOS{})
	assert.Error(t, err)
}
