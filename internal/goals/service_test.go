package goals

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
)

func setupGoalsDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS company_goals (
  id TEXT,
  tenant_id TEXT NOT NULL,
  type TEXT NOT NULL,
  target REAL NOT NULL,
  current REAL NOT NULL DEFAULT 0,
  period TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newGoalService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func seedGoal(t *testing.T, db *gorm.DB, tenantID uuid.UUID, goalType enums.OptimizationGoal, target, current float64, period string) *models.CompanyGoal {
	t.Helper()

	goal := &models.CompanyGoal{
		ID:       uuid.New(),
		TenantID: tenantID,
		Type:     goalType,
		Target:   target,
		Current:  current,
		Period:   period,
	}
	require.NoError(t, db.Create(goal).Error)
	return goal
}

func TestCreateGoal(t *testing.T) {
	db := setupGoalsDB(t)
	svc := newGoalService(t, db)

	goal, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Type:   enums.GoalRevenue,
		Target: 5000000,
		Period: "  FY2026  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "FY2026", goal.Period, "period is trimmed")
	assert.Zero(t, goal.Current)
	assert.Zero(t, goal.Progress)
}

func TestCreateGoalValidation(t *testing.T) {
	db := setupGoalsDB(t)
	svc := newGoalService(t, db)

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Type:   enums.OptimizationGoal("growth"),
		Target: 100,
		Period: "FY2026",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), uuid.New(), CreateInput{
		Type:   enums.GoalVolume,
		Target: 0,
		Period: "FY2026",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListComputesProgress(t *testing.T) {
	db := setupGoalsDB(t)
	svc := newGoalService(t, db)

	tenantID := uuid.New()
	seedGoal(t, db, tenantID, enums.GoalRevenue, 5000000, 3250000, "FY2025")
	seedGoal(t, db, tenantID, enums.GoalMargin, 0, 0.39, "FY2025")
	seedGoal(t, db, tenantID, enums.GoalVolume, 100000, 20000, "FY2024")
	seedGoal(t, db, uuid.New(), enums.GoalRevenue, 100, 50, "FY2025")

	out, err := svc.List(context.Background(), tenantID, "FY2025")
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Ordered margin before revenue by type.
	assert.Equal(t, enums.GoalMargin, out[0].Type)
	assert.Zero(t, out[0].Progress, "zero target yields zero progress")
	assert.Equal(t, enums.GoalRevenue, out[1].Type)
	assert.InDelta(t, 0.65, out[1].Progress, 0.0001)

	all, err := svc.List(context.Background(), tenantID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3, "empty period lists every goal")
}

func TestUpdateProgress(t *testing.T) {
	db := setupGoalsDB(t)
	svc := newGoalService(t, db)

	seeded := seedGoal(t, db, uuid.New(), enums.GoalRevenue, 1000000, 0, "FY2025")

	goal, err := svc.UpdateProgress(context.Background(), seeded.TenantID, seeded.ID, 250000)
	require.NoError(t, err)
	assert.Equal(t, 250000.0, goal.Current)
	assert.InDelta(t, 0.25, goal.Progress, 0.0001)
}

func TestUpdateProgressGuards(t *testing.T) {
	db := setupGoalsDB(t)
	svc := newGoalService(t, db)

	seeded := seedGoal(t, db, uuid.New(), enums.GoalRevenue, 1000, 0, "FY2025")

	_, err := svc.UpdateProgress(context.Background(), seeded.TenantID, seeded.ID, -10)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.UpdateProgress(context.Background(), uuid.New(), seeded.ID, 10)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code(), "other tenants never see the goal")
}
