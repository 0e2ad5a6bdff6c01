package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/Richyi/promosophia/pkg/auth"
	"github.com/Richyi/promosophia/pkg/config"
	"github.com/Richyi/promosophia/pkg/enums"
	"github.com/Richyi/promosophia/pkg/logger"
)

type stubSessionChecker struct {
	active map[string]bool
}

func (s *stubSessionChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	return s.active[accessID], nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "promosophia",
		ExpirationMinutes:      30,
		RefreshTokenTTLMinutes: 43200,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "middleware-test", Output: io.Discard})
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, payload pkgAuth.AccessTokenPayload) string {
	t.Helper()

	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), payload)
	require.NoError(t, err)
	return token
}

func TestAuthSeedsIdentityContext(t *testing.T) {
	cfg := testJWTConfig()
	userID, tenantID := uuid.New(), uuid.New()
	accessID := uuid.NewString()
	token := mintTestToken(t, cfg, pkgAuth.AccessTokenPayload{
		UserID:   userID,
		TenantID: tenantID,
		Role:     enums.UserRoleRevenueManager,
		JTI:      accessID,
	})

	checker := &stubSessionChecker{active: map[string]bool{accessID: true}}

	var seen struct {
		userID, role, tenantID string
	}
	handler := Auth(cfg, checker, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.userID = UserIDFromContext(r.Context())
		seen.role = RoleFromContext(r.Context())
		seen.tenantID = TenantIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/promotions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, userID.String(), seen.userID)
	assert.Equal(t, string(enums.UserRoleRevenueManager), seen.role)
	assert.Equal(t, tenantID.String(), seen.tenantID)
}

func TestAuthRejectsMissingCredentials(t *testing.T) {
	handler := Auth(testJWTConfig(), &stubSessionChecker{}, testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	for name, header := range map[string]string{
		"no header":    "",
		"empty bearer": "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/promotions", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	handler := Auth(testJWTConfig(), &stubSessionChecker{}, testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/promotions", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsForeignSecret(t *testing.T) {
	otherCfg := testJWTConfig()
	otherCfg.Secret = "someone-elses-secret"
	token := mintTestToken(t, otherCfg, pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     enums.UserRoleAnalyst,
	})

	handler := Auth(testJWTConfig(), &stubSessionChecker{}, testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run with a token signed by another key")
	}))

	req := httptest.NewRequest(http.MethodGet, "/promotions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	accessID := uuid.NewString()
	token := mintTestToken(t, cfg, pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     enums.UserRoleAnalyst,
		JTI:      accessID,
	})

	// Session store has no entry for this jti, so the token is logged out.
	handler := Auth(cfg, &stubSessionChecker{active: map[string]bool{}}, testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run after logout")
	}))

	req := httptest.NewRequest(http.MethodGet, "/promotions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
