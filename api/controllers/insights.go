package controllers

import (
	"net/http"

	"github.com/Richyi/promosophia/api/responses"
	"github.com/Richyi/promosophia/internal/insights"
	"github.com/Richyi/promosophia/internal/tenants"
	"github.com/Richyi/promosophia/pkg/logger"
)

// InsightList generates ranked insights from the tenant's live aggregates.
func InsightList(svc insights.Service, tenantSvc tenants.Service, logg *logger.Logger) http.HandlerFunc {
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

		rows, err := svc.Generate(
			ctx,
			tenantID,
			r.URL.Query().Get("period"),
			tenant.Settings.Currency,
			tenant.Settings.FiscalYearStart,
		)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"insights": rows})
	}
}
