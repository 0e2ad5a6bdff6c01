package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Richyi/promosophia/pkg/enums"
)

func TestRequireRoleAllowsSufficientRank(t *testing.T) {
	handler := RequireRole(enums.UserRoleRevenueManager, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, role := range []enums.UserRole{
		enums.UserRoleRevenueManager,
		enums.UserRoleTenantAdmin,
		enums.UserRoleSuperAdmin,
	} {
		req := httptest.NewRequest(http.MethodPost, "/promotions", nil)
		req = req.WithContext(WithRole(req.Context(), string(role)))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code, "role %s should pass", role)
	}
}

func TestRequireRoleForbidsLowerRank(t *testing.T) {
	handler := RequireRole(enums.UserRoleTenantAdmin, testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run for an outranked caller")
	}))

	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleAnalyst)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleForbidsUnknownOrMissingRole(t *testing.T) {
	handler := RequireRole(enums.UserRoleAnalyst, testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without a recognized role")
	}))

	for name, ctxRoleValue := range map[string]string{
		"unknown role": "INTERN",
		"missing role": "",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/analytics/dashboard", nil)
			if ctxRoleValue != "" {
				req = req.WithContext(WithRole(req.Context(), ctxRoleValue))
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}
