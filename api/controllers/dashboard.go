package controllers

import (
	"net/http"

	"github.com/Richyi/promosophia/api/responses"
	"github.com/Richyi/promosophia/internal/analytics"
	"github.com/Richyi/promosophia/internal/tenants"
	"github.com/Richyi/promosophia/pkg/logger"
)

// Dashboard returns the tenant's headline KPI set.
func Dashboard(svc analytics.Service, tenantSvc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		tenant, err := tenantSvc.Get(ctx, tenantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		kpis, err := svc.Dashboard(ctx, tenantID, r.URL.Query().Get("period"), tenant.Settings.Currency)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, kpis)
	}
}
