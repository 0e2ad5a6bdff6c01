package insights

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
	counts   map[enums.DeductionStatus]int64
}

func (s *stubDeductions) OutstandingExposure(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return s.exposure, nil
}

func (s *stubDeductions) CountByStatus(_ context.Context, _ uuid.UUID) (map[enums.DeductionStatus]int64, error) {
	return s.counts, nil
}

type stubGoals struct {
	rows []models.CompanyGoal
}

func (s *stubGoals) ListByPeriod(_ context.Context, _ uuid.UUID, _ string) ([]models.CompanyGoal, error) {
	return s.rows, nil
}

func roiPtr(v float64) *float64 { return &v }

func buildInsightService(promos []models.TradePromotion, ded *stubDeductions, goals []models.CompanyGoal, now time.Time) *service {
	if ded == nil {
		ded = &stubDeductions{exposure: decimal.Zero}
	}
	return &service{
		promotions: &stubPromotions{rows: promos},
		deductions: ded,
		goals:      &stubGoals{rows: goals},
		now:        func() time.Time { return now },
	}
}

func TestGenerateBestPerformer(t *testing.T) {
	promos := []models.TradePromotion{
		{Name: "Coffee Month Special", ROI: roiPtr(1.83)},
		{Name: "Holiday Gifting Boost", ROI: roiPtr(1.03)},
	}
	svc := buildInsightService(promos, nil, nil, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))

	out, err := svc.Generate(context.Background(), uuid.New(), "FY2025", "USD", 0)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "performance", out[0].Category)
	assert.Equal(t, SeverityInfo, out[0].Severity)
	assert.Contains(t, out[0].Title, "Coffee Month Special")
	assert.Contains(t, out[0].Body, "183.0%")
}

func TestGenerateWorstPerformerOnlyWhenNegative(t *testing.T) {
	profitable := []models.TradePromotion{
		{Name: "Winner", ROI: roiPtr(1.2)},
		{Name: "Modest", ROI: roiPtr(0.1)},
	}
	svc := buildInsightService(profitable, nil, nil, time.Now())
	out, err := svc.Generate(context.Background(), uuid.New(), "", "USD", 0)
	require.NoError(t, err)
	for _, insight := range out {
		assert.NotEqual(t, SeverityWarning, insight.Severity)
	}

	losing := []models.TradePromotion{
		{Name: "Winner", ROI: roiPtr(1.2)},
		{Name: "Money Pit", ROI: roiPtr(-0.4)},
	}
	svc = buildInsightService(losing, nil, nil, time.Now())
	out, err = svc.Generate(context.Background(), uuid.New(), "", "USD", 0)
	require.NoError(t, err)

	var found bool
	for _, insight := range out {
		if insight.Severity == SeverityWarning && insight.Category == "performance" {
			found = true
			assert.Contains(t, insight.Title, "Money Pit")
		}
	}
	assert.True(t, found, "expected a loss warning")
}

func TestGenerateExposureWarning(t *testing.T) {
	ded := &stubDeductions{
		exposure: decimal.NewFromFloat(1700),
		counts: map[enums.DeductionStatus]int64{
			enums.DeductionStatusOpen:      1,
			enums.DeductionStatusContested: 1,
		},
	}
	svc := buildInsightService(nil, ded, nil, time.Now())

	out, err := svc.Generate(context.Background(), uuid.New(), "", "USD", 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "deductions", out[0].Category)
	assert.Equal(t, SeverityWarning, out[0].Severity, "contested deductions escalate severity")
	assert.Contains(t, out[0].Title, "$1,700")
}

func TestGenerateExposureInfoWhenQuiet(t *testing.T) {
	ded := &stubDeductions{
		exposure: decimal.NewFromFloat(450),
		counts:   map[enums.DeductionStatus]int64{enums.DeductionStatusOpen: 1},
	}
	svc := buildInsightService(nil, ded, nil, time.Now())

	out, err := svc.Generate(context.Background(), uuid.New(), "", "USD", 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, SeverityInfo, out[0].Severity)
}

func TestGenerateGoalPacingAlert(t *testing.T) {
	// Halfway through the fiscal year with only 20% progress.
	now := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	goals := []models.CompanyGoal{
		{Type: enums.GoalRevenue, Target: 1000000, Current: 200000, Period: "FY2025"},
		{Type: enums.GoalVolume, Target: 1000, Current: 900, Period: "FY2025"},
	}
	svc := buildInsightService(nil, nil, goals, now)

	out, err := svc.Generate(context.Background(), uuid.New(), "FY2025", "USD", 0)
	require.NoError(t, err)
	require.Len(t, out, 1, "only the lagging goal alerts")
	assert.Equal(t, "goals", out[0].Category)
	assert.Equal(t, SeverityAlert, out[0].Severity)
	assert.Contains(t, out[0].Title, "Revenue")
}

func TestGenerateSortsByScore(t *testing.T) {
	now := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	promos := []models.TradePromotion{
		{Name: "Winner", ROI: roiPtr(0.3)},
		{Name: "Loser", ROI: roiPtr(-0.6)},
	}
	ded := &stubDeductions{
		exposure: decimal.NewFromFloat(9000),
		counts:   map[enums.DeductionStatus]int64{enums.DeductionStatusOpen: 4},
	}
	goals := []models.CompanyGoal{
		{Type: enums.GoalRevenue, Target: 1000000, Current: 100000, Period: "FY2025"},
	}
	svc := buildInsightService(promos, ded, goals, now)

	out, err := svc.Generate(context.Background(), uuid.New(), "FY2025", "USD", 0)
	require.NoError(t, err)
	require.True(t, len(out) >= 3)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score)
	}
	// The loss warning carries the highest score in this mix.
	assert.Contains(t, out[0].Title, "Loser")
}

func TestGenerateEmptyTenant(t *testing.T) {
	svc := buildInsightService(nil, nil, nil, time.Now())

	out, err := svc.Generate(context.Background(), uuid.New(), "", "USD", 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}
