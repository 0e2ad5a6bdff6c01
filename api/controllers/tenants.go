package controllers

import (
	"net/http"

	"github.com/Richyi/promosophia/api/middleware"
	"github.com/Richyi/promosophia/api/responses"
	"github.com/Richyi/promosophia/api/validators"
	"github.com/Richyi/promosophia/internal/tenants"
	"github.com/Richyi/promosophia/pkg/enums"
	"github.com/Richyi/promosophia/pkg/logger"
)

// TenantGet returns the caller's tenant with its settings.
func TenantGet(svc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		tenant, err := svc.Get(ctx, tenantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, tenant)
	}
}

// TenantList returns all tenants. Platform admin only.
func TenantList(svc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		role := enums.UserRole(middleware.RoleFromContext(ctx))
		rows, err := svc.List(ctx, role)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"tenants": rows})
	}
}

// TenantUpdateSettings updates the caller tenant's settings.
func TenantUpdateSettings(svc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload tenants.UpdateSettingsInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		tenant, err := svc.UpdateSettings(ctx, tenantID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, tenant)
	}
}
