package promotions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
	dbtypes "github.com/Richyi/promosophia/pkg/db/types"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/logger"
	"github.com/Richyi/promosophia/pkg/pagination"
	"github.com/Richyi/promosophia/pkg/promomath"
)

type retailerFinder interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Retailer, error)
}

// Service exposes the trade promotion lifecycle.
type Service interface {
	Create(ctx context.Context, tenantID, actorID uuid.UUID, input CreateInput) (*models.TradePromotion, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.TradePromotion, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ListFilter, params pagination.Params) (pagination.Page[models.TradePromotion], error)
	Update(ctx context.Context, tenantID, actorID, id uuid.UUID, input UpdateInput) (*models.TradePromotion, error)
	Transition(ctx context.Context, tenantID, actorID, id uuid.UUID, action Action, reason *string) (*models.TradePromotion, error)
	RecordActuals(ctx context.Context, tenantID, actorID, id uuid.UUID, input ActualsInput) (*models.TradePromotion, error)
}

type service struct {
	repo      *Repository
	retailers retailerFinder
	logg      *logger.Logger
	now       func() time.Time
}

// NewService wires the promotion service. All dependencies are required.
func NewService(repo *Repository, retailers retailerFinder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("promotion repository required")
	}
	if retailers == nil {
		return nil, fmt.Errorf("retailer finder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, retailers: retailers, logg: logg, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, tenantID, actorID uuid.UUID, input CreateInput) (*models.TradePromotion, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}
	if _, err := s.retailers.FindByID(ctx, tenantID, input.RetailerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown retailer")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load retailer")
	}

	promotion := &models.TradePromotion{
		TenantID:            tenantID,
		RetailerID:          input.RetailerID,
		Name:                input.Name,
		Description:         input.Description,
		Status:              enums.PromotionStatusDraft,
		ProductIDs:          dbtypes.UUIDArray(input.ProductIDs),
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		MechanicType:        input.MechanicType,
		MechanicDescription: input.MechanicDescription,
		BuyQuantity:         input.BuyQuantity,
		GetQuantity:         input.GetQuantity,
		MinimumPurchase:     input.MinimumPurchase,
		MaximumDiscount:     input.MaximumDiscount,
		DiscountDepth:       input.DiscountDepth,
		PlannedSpend:        input.PlannedSpend,
		PlannedVolume:       input.PlannedVolume,
		PlannedRevenue:      input.PlannedRevenue,
		PlannedMargin:       input.PlannedMargin,
		CreatedBy:           actorID,
	}
	history := &models.PromotionHistory{
		Action: "created",
		NewValues: dbtypes.JSONMap{
			"name":   input.Name,
			"status": enums.PromotionStatusDraft.String(),
		},
		UserID: actorID,
	}
	if err := s.repo.Create(ctx, promotion, history); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create promotion")
	}
	return promotion, nil
}

func (s *service) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.TradePromotion, error) {
	promotion, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load promotion")
	}
	return promotion, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter, params pagination.Params) (pagination.Page[models.TradePromotion], error) {
	rows, err := s.repo.List(ctx, tenantID, filter, params)
	if err != nil {
		return pagination.Page[models.TradePromotion]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list promotions")
	}
	return pagination.NewPage(rows, params.Limit, func(p models.TradePromotion) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	}), nil
}

// Update edits plan-stage fields. Once a promotion is approved the plan is
// locked and only status actions and actuals apply.
func (s *service) Update(ctx context.Context, tenantID, actorID, id uuid.UUID, input UpdateInput) (*models.TradePromotion, error) {
	promotion, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if promotion.Status != enums.PromotionStatusDraft && promotion.Status != enums.PromotionStatusPlanned {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot edit promotion in status %s", promotion.Status))
	}

	oldValues := dbtypes.JSONMap{}
	newValues := dbtypes.JSONMap{}

	if input.Name != nil && *input.Name != promotion.Name {
		oldValues["name"], newValues["name"] = promotion.Name, *input.Name
		promotion.Name = *input.Name
	}
	if input.Description != nil {
		oldValues["description"], newValues["description"] = deref(promotion.Description), *input.Description
		promotion.Description = input.Description
	}
	if len(input.ProductIDs) > 0 {
		oldValues["product_ids"], newValues["product_ids"] = len(promotion.ProductIDs), len(input.ProductIDs)
		promotion.ProductIDs = dbtypes.UUIDArray(input.ProductIDs)
	}
	if input.StartDate != nil {
		oldValues["start_date"], newValues["start_date"] = promotion.StartDate, *input.StartDate
		promotion.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		oldValues["end_date"], newValues["end_date"] = promotion.EndDate, *input.EndDate
		promotion.EndDate = *input.EndDate
	}
	if input.MechanicDescription != nil {
		promotion.MechanicDescription = *input.MechanicDescription
	}
	if input.DiscountDepth != nil {
		oldValues["discount_depth"], newValues["discount_depth"] = promotion.DiscountDepth, *input.DiscountDepth
		promotion.DiscountDepth = *input.DiscountDepth
	}
	if input.PlannedSpend != nil {
		oldValues["planned_spend"], newValues["planned_spend"] = promotion.PlannedSpend.String(), input.PlannedSpend.String()
		promotion.PlannedSpend = *input.PlannedSpend
	}
	if input.PlannedVolume != nil {
		oldValues["planned_volume"], newValues["planned_volume"] = promotion.PlannedVolume, *input.PlannedVolume
		promotion.PlannedVolume = *input.PlannedVolume
	}
	if input.PlannedRevenue != nil {
		oldValues["planned_revenue"], newValues["planned_revenue"] = promotion.PlannedRevenue.String(), input.PlannedRevenue.String()
		promotion.PlannedRevenue = *input.PlannedRevenue
	}
	if input.PlannedMargin != nil {
		oldValues["planned_margin"], newValues["planned_margin"] = promotion.PlannedMargin, *input.PlannedMargin
		promotion.PlannedMargin = *input.PlannedMargin
	}

	if promotion.EndDate.Before(promotion.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}

	history := &models.PromotionHistory{
		Action:    "updated",
		OldValues: oldValues,
		NewValues: newValues,
		UserID:    actorID,
	}
	if err := s.repo.Update(ctx, promotion, history); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update promotion")
	}
	return promotion, nil
}

// Transition applies a lifecycle action. Approval records the approver.
func (s *service) Transition(ctx context.Context, tenantID, actorID, id uuid.UUID, action Action, reason *string) (*models.TradePromotion, error) {
	target, ok := action.Target()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown action %q", action))
	}

	promotion, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !promotion.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(
			pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move promotion from %s to %s", promotion.Status, target),
		)
	}

	oldStatus := promotion.Status
	promotion.Status = target
	if action == ActionApprove {
		now := s.now().UTC()
		promotion.ApprovedBy = &actorID
		promotion.ApprovedAt = &now
	}

	history := &models.PromotionHistory{
		Action:    string(action),
		OldValues: dbtypes.JSONMap{"status": oldStatus.String()},
		NewValues: dbtypes.JSONMap{"status": target.String()},
		UserID:    actorID,
		Reason:    reason,
	}
	if err := s.repo.Update(ctx, promotion, history); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "transition promotion")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"promotion_id": promotion.ID.String(),
		"from":         oldStatus.String(),
		"to":           target.String(),
	}), "promotion transitioned")
	return promotion, nil
}

// RecordActuals stores observed performance and recomputes ROI. Lift stays a
// whole-number percent.
func (s *service) RecordActuals(ctx context.Context, tenantID, actorID, id uuid.UUID, input ActualsInput) (*models.TradePromotion, error) {
	promotion, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if promotion.Status != enums.PromotionStatusActive && promotion.Status != enums.PromotionStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "actuals apply to active or completed promotions only")
	}
	if input.ActualSpend.IsNegative() || input.ActualRevenue.IsNegative() || input.ActualVolume < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actuals must be non-negative")
	}

	promotion.ActualSpend = &input.ActualSpend
	promotion.ActualRevenue = &input.ActualRevenue
	promotion.ActualVolume = &input.ActualVolume
	promotion.ActualMargin = input.ActualMargin
	promotion.LiftPercent = input.LiftPercent

	revenue, _ := input.ActualRevenue.Float64()
	spend, _ := input.ActualSpend.Float64()
	roi := promomath.ROI(revenue, spend)
	promotion.ROI = &roi

	history := &models.PromotionHistory{
		Action: "actuals_recorded",
		NewValues: dbtypes.JSONMap{
			"actual_spend":   input.ActualSpend.String(),
			"actual_revenue": input.ActualRevenue.String(),
			"actual_volume":  input.ActualVolume,
			"roi":            roi,
		},
		UserID: actorID,
	}
	if err := s.repo.Update(ctx, promotion, history); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record actuals")
	}
	return promotion, nil
}

func validateCreate(input CreateInput) error {
	if input.EndDate.Before(input.StartDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}
	if len(input.ProductIDs) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one product is required")
	}
	if !input.MechanicType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid mechanic type")
	}
	if input.MechanicType.UsesQuantities() {
		if input.BuyQuantity == nil || input.GetQuantity == nil || *input.BuyQuantity <= 0 || *input.GetQuantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "buy and get quantities are required for this mechanic")
		}
	}
	if input.DiscountDepth < 0 || input.DiscountDepth > 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount depth must be a fraction between 0 and 1")
	}
	if input.PlannedSpend.IsNegative() || input.PlannedRevenue.IsNegative() || input.PlannedVolume < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "planned figures must be non-negative")
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
