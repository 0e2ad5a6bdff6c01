package users

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
)

func setupUsersDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  role TEXT NOT NULL,
  avatar_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_tenant_email ON users (tenant_id, email);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newUserService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func seedUser(t *testing.T, db *gorm.DB, tenantID uuid.UUID, email string, role enums.UserRole, createdAt time.Time) *models.User {
	t.Helper()

	user := &models.User{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      "Sarah Chen",
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestListReturnsTenantUsersOldestFirst(t *testing.T) {
	db := setupUsersDB(t)
	svc := newUserService(t, db)

	tenantID := uuid.New()
	base := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	first := seedUser(t, db, tenantID, "s.chen@cpg-corp.com", enums.UserRoleTenantAdmin, base)
	second := seedUser(t, db, tenantID, "m.rivera@cpg-corp.com", enums.UserRoleAnalyst, base.Add(time.Hour))
	seedUser(t, db, uuid.New(), "outsider@other.com", enums.UserRoleAnalyst, base)

	out, err := svc.List(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, first.Email, out[0].Email)
	assert.Equal(t, second.Email, out[1].Email)
}

func TestInviteCreatesActiveUser(t *testing.T) {
	db := setupUsersDB(t)
	svc := newUserService(t, db)

	tenantID := uuid.New()
	dto, err := svc.Invite(context.Background(), tenantID, InviteInput{
		Name:  "  Marcus Rivera  ",
		Email: "M.Rivera@cpg-corp.com",
		Role:  enums.UserRoleFinance,
	})
	require.NoError(t, err)

	assert.Equal(t, "Marcus Rivera", dto.Name)
	assert.Equal(t, "m.rivera@cpg-corp.com", dto.Email, "emails are normalized to lowercase")
	assert.Equal(t, enums.UserRoleFinance, dto.Role)
	assert.True(t, dto.IsActive)
}

func TestInviteValidation(t *testing.T) {
	db := setupUsersDB(t)
	svc := newUserService(t, db)

	_, err := svc.Invite(context.Background(), uuid.New(), InviteInput{Name: "X", Email: "not-an-email", Role: enums.UserRoleAnalyst})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Invite(context.Background(), uuid.New(), InviteInput{Name: "X", Email: "x@y.com", Role: enums.UserRole("INTERN")})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestInviteNeverGrantsSuperAdmin(t *testing.T) {
	db := setupUsersDB(t)
	svc := newUserService(t, db)

	_, err := svc.Invite(context.Background(), uuid.New(), InviteInput{
		Name:  "Root",
		Email: "root@cpg-corp.com",
		Role:  enums.UserRoleSuperAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestInviteDuplicateEmailConflicts(t *testing.T) {
	db := setupUsersDB(t)
	svc := newUserService(t, db)

	tenantID := uuid.New()
	seedUser(t, db, tenantID, "s.chen@cpg-corp.com", enums.UserRoleTenantAdmin, time.Now().UTC())

	_, err := svc.Invite(context.Background(), tenantID, InviteInput{
		Name:  "Sarah Again",
		Email: "s.chen@cpg-corp.com",
		Role:  enums.UserRoleAnalyst,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestDeactivate(t *testing.T) {
	db := setupUsersDB(t)
	svc := newUserService(t, db)

	seeded := seedUser(t, db, uuid.New(), "s.chen@cpg-corp.com", enums.UserRoleAnalyst, time.Now().UTC())

	require.NoError(t, svc.Deactivate(context.Background(), seeded.TenantID, seeded.ID))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", seeded.ID).Error)
	assert.False(t, reloaded.IsActive)

	err := svc.Deactivate(context.Background(), uuid.New(), seeded.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code(), "cross-tenant deactivation reads as not found")
}
