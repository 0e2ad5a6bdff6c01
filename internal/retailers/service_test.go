package retailers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/pagination"
)

func setupRetailersDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS retailers (
  id TEXT,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  code TEXT NOT NULL,
  region TEXT NOT NULL,
  channel TEXT NOT NULL,
  tier TEXT NOT NULL,
  contact_email TEXT,
  contact_phone TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_retailers_tenant_code ON retailers (tenant_id, code);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newRetailerService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func seedRetailer(t *testing.T, db *gorm.DB, tenantID uuid.UUID, name, code string, tier enums.RetailerTier, createdAt time.Time) *models.Retailer {
	t.Helper()

	retailer := &models.Retailer{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		Code:      code,
		Region:    "Northeast",
		Channel:   "grocery",
		Tier:      tier,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(retailer).Error)
	return retailer
}

func TestCreateNormalizesCode(t *testing.T) {
	db := setupRetailersDB(t)
	svc := newRetailerService(t, db)

	retailer, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Name:    "  Whole Foods  ",
		Code:    " wf-ne ",
		Region:  "Northeast",
		Channel: "grocery",
		Tier:    enums.RetailerTierA,
	})
	require.NoError(t, err)

	assert.Equal(t, "Whole Foods", retailer.Name)
	assert.Equal(t, "WF-NE", retailer.Code, "codes are upper-cased")
	assert.True(t, retailer.IsActive)
}

func TestCreateRejectsUnknownTier(t *testing.T) {
	db := setupRetailersDB(t)
	svc := newRetailerService(t, db)

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Name: "Kroger", Code: "KR", Region: "Midwest", Channel: "grocery",
		Tier: enums.RetailerTier("S"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateDuplicateCodeConflicts(t *testing.T) {
	db := setupRetailersDB(t)
	svc := newRetailerService(t, db)

	tenantID := uuid.New()
	seedRetailer(t, db, tenantID, "Whole Foods", "WF-NE", enums.RetailerTierA, time.Now().UTC())

	_, err := svc.Create(context.Background(), tenantID, CreateInput{
		Name: "Whole Foods Again", Code: "wf-ne", Region: "Northeast", Channel: "grocery",
		Tier: enums.RetailerTierA,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestListPaginatesNewestFirst(t *testing.T) {
	db := setupRetailersDB(t)
	svc := newRetailerService(t, db)

	tenantID := uuid.New()
	base := time.Date(2025, time.February, 3, 10, 0, 0, 0, time.UTC)
	oldest := seedRetailer(t, db, tenantID, "Kroger", "KR", enums.RetailerTierA, base)
	seedRetailer(t, db, tenantID, "Target", "TG", enums.RetailerTierB, base.Add(time.Hour))
	newest := seedRetailer(t, db, tenantID, "Costco", "CC", enums.RetailerTierA, base.Add(2*time.Hour))

	page, err := svc.List(context.Background(), tenantID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, newest.ID, page.Items[0].ID)

	rest, err := svc.List(context.Background(), tenantID, pagination.Params{Limit: 2, Cursor: *page.NextCursor})
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.Equal(t, oldest.ID, rest.Items[0].ID)
	assert.Nil(t, rest.NextCursor)
}

func TestUpdateRetailer(t *testing.T) {
	db := setupRetailersDB(t)
	svc := newRetailerService(t, db)

	seeded := seedRetailer(t, db, uuid.New(), "Target", "TG", enums.RetailerTierB, time.Now().UTC())

	tier := enums.RetailerTierA
	region := "National"
	retailer, err := svc.Update(context.Background(), seeded.TenantID, seeded.ID, UpdateInput{
		Tier:   &tier,
		Region: &region,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.RetailerTierA, retailer.Tier)
	assert.Equal(t, "National", retailer.Region)

	badTier := enums.RetailerTier("S")
	_, err = svc.Update(context.Background(), seeded.TenantID, seeded.ID, UpdateInput{Tier: &badTier})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeactivateRetailer(t *testing.T) {
	db := setupRetailersDB(t)
	svc := newRetailerService(t, db)

	seeded := seedRetailer(t, db, uuid.New(), "Target", "TG", enums.RetailerTierB, time.Now().UTC())

	require.NoError(t, svc.Deactivate(context.Background(), seeded.TenantID, seeded.ID))

	var reloaded models.Retailer
	require.NoError(t, db.First(&reloaded, "id = ?", seeded.ID).Error)
	assert.False(t, reloaded.IsActive)

	err := svc.Deactivate(context.Background(), uuid.New(), seeded.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListActiveExcludesDeactivated(t *testing.T) {
	db := setupRetailersDB(t)
	svc := newRetailerService(t, db)

	tenantID := uuid.New()
	now := time.Now().UTC()
	active := seedRetailer(t, db, tenantID, "Kroger", "KR", enums.RetailerTierA, now)
	disabled := seedRetailer(t, db, tenantID, "Target", "TG", enums.RetailerTierB, now.Add(time.Minute))
	require.NoError(t, svc.Deactivate(context.Background(), tenantID, disabled.ID))

	rows, err := NewRepository(db).ListActive(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, active.ID, rows[0].ID)
}
