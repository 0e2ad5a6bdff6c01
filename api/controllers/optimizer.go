package controllers

import (
	"net/http"

	"github.com/Richyi/promosophia/api/responses"
	"github.com/Richyi/promosophia/api/validators"
	"github.com/Richyi/promosophia/internal/optimizer"
	"github.com/Richyi/promosophia/pkg/logger"
)

// OptimizerRun executes an optimization and persists the scenario.
func OptimizerRun(svc optimizer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		actorID, err := userIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload optimizer.OptimizationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := svc.Run(ctx, tenantID, actorID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ScenarioList returns the tenant's saved scenarios.
func ScenarioList(svc optimizer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		rows, err := svc.ListScenarios(ctx, tenantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"scenarios": rows})
	}
}

// ScenarioGet returns one saved scenario.
func ScenarioGet(svc optimizer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := pathUUID(r, "scenarioID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		scenario, err := svc.GetScenario(ctx, tenantID, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, scenario)
	}
}
