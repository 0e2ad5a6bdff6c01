package controllers

import (
	"net/http"
	"time"

	"github.com/Richyi/promosophia/api/responses"
	"github.com/Richyi/promosophia/api/validators"
	"github.com/Richyi/promosophia/internal/pos"
	"github.com/Richyi/promosophia/internal/tenants"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/logger"
)

type posBatchPayload struct {
	Rows []pos.RowInput `json:"rows" validate:"required,min=1,dive"`
}

// POSIngest accepts a batch of POS rows.
func POSIngest(svc pos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload posBatchPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		inserted, err := svc.Ingest(ctx, tenantID, payload.Rows)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"inserted": inserted})
	}
}

// POSPromotionLift returns promoted vs baseline totals for one promotion.
func POSPromotionLift(svc pos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		promotionID, err := pathUUID(r, "promotionID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		lift, err := svc.PromotionLift(ctx, tenantID, promotionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, lift)
	}
}

// POSPeriodSummary buckets POS revenue by fiscal year and quarter.
func POSPeriodSummary(svc pos.Service, tenantSvc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		from, err := parseDateParam(r, "from")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		to, err := parseDateParam(r, "to")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		tenant, err := tenantSvc.Get(ctx, tenantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		buckets, err := svc.PeriodSummary(ctx, tenantID, from, to, tenant.Settings.FiscalYearStart)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"buckets": buckets})
	}
}

func parseDateParam(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "missing date parameter").WithDetails(map[string]any{"field": key})
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "dates must be YYYY-MM-DD").WithDetails(map[string]any{"field": key})
	}
	return t, nil
}
