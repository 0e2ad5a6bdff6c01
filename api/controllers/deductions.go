package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Richyi/promosophia/api/responses"
	"github.com/Richyi/promosophia/api/validators"
	"github.com/Richyi/promosophia/internal/deductions"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/logger"
)

type deductionActionPayload struct {
	Action string  `json:"action" validate:"required"`
	Notes  *string `json:"notes,omitempty"`
}

// DeductionList returns a page of the tenant's deductions, optionally
// filtered by status and retailer.
func DeductionList(svc deductions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var filter deductions.ListFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseDeductionStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filter.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("retailer_id")); raw != "" {
			retailerID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid retailer filter"))
				return
			}
			filter.RetailerID = &retailerID
		}

		page, err := svc.List(ctx, tenantID, filter, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// DeductionGet returns one deduction.
func DeductionGet(svc deductions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := pathUUID(r, "deductionID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		deduction, err := svc.Get(ctx, tenantID, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, deduction)
	}
}

// DeductionCreate records a new charge-back.
func DeductionCreate(svc deductions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload deductions.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		deduction, err := svc.Create(ctx, tenantID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, deduction)
	}
}

// DeductionAction applies a status transition.
func DeductionAction(svc deductions.Service, logg *logger.Logger) http.HandlerFunc {
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
		id, err := pathUUID(r, "deductionID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload deductionActionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		deduction, err := svc.Transition(ctx, tenantID, actorID, id, deductions.Action(payload.Action), payload.Notes)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, deduction)
	}
}

// DeductionExposure returns the outstanding exposure total.
func DeductionExposure(svc deductions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenantID, err := tenantIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		total, err := svc.OutstandingExposure(ctx, tenantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"exposure": total})
	}
}
