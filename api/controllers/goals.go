package controllers

import (
	"net/http"

	"github.com/Richyi/promosophia/api/responses"
	"github.com/Richyi/promosophia/api/validators"
	"github.com/Richyi/promosophia/internal/goals"
	"github.com/Richyi/promosophia/pkg/logger"
)

type goalProgressPayload struct {
	Current float64 `json:"current"`
}

// GoalList returns the tenant's goals, optionally filtered by period.
func GoalList(svc goals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		rows, err := svc.List(ctx, tenantID, r.URL.Query().Get("period"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"goals": rows})
	}
}

// GoalCreate sets a new company goal.
func GoalCreate(svc goals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload goals.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		goal, err := svc.Create(ctx, tenantID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, goal)
	}
}

// GoalUpdateProgress overwrites a goal's current progress.
func GoalUpdateProgress(svc goals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := pathUUID(r, "goalID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload goalProgressPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		goal, err := svc.UpdateProgress(ctx, tenantID, id, payload.Current)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, goal)
	}
}
