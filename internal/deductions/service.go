package deductions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/pagination"
)

// CreateInput carries the fields accepted when recording a deduction.
type CreateInput struct {
	RetailerID    uuid.UUID       `json:"retailer_id" validate:"required"`
	PromotionID   *uuid.UUID      `json:"promotion_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type" validate:"required"`
	Reason        string          `json:"reason" validate:"required"`
	InvoiceNumber *string         `json:"invoice_number,omitempty"`
	Date          time.Time       `json:"date" validate:"required"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
}

// Action names a deduction status transition.
type Action string

const (
	ActionMarkPending Action = "mark-pending"
	ActionClear       Action = "clear"
	ActionContest     Action = "contest"
)

// Target returns the status this action moves a deduction into.
func (a Action) Target() (enums.DeductionStatus, bool) {
	switch a {
	case ActionMarkPending:
		return enums.DeductionStatusPending, true
	case ActionClear:
		return enums.DeductionStatusCleared, true
	case ActionContest:
		return enums.DeductionStatusContested, true
	default:
		return "", false
	}
}

// Service exposes deduction tracking and resolution.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Deduction, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Deduction, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ListFilter, params pagination.Params) (pagination.Page[models.Deduction], error)
	Transition(ctx context.Context, tenantID, actorID, id uuid.UUID, action Action, notes *string) (*models.Deduction, error)
	OutstandingExposure(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService builds a deduction service over the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("deduction repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Deduction, error) {
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	deduction := &models.Deduction{
		TenantID:      tenantID,
		RetailerID:    input.RetailerID,
		PromotionID:   input.PromotionID,
		Amount:        input.Amount,
		Status:        enums.DeductionStatusOpen,
		Type:          input.Type,
		Reason:        input.Reason,
		InvoiceNumber: input.InvoiceNumber,
		Date:          input.Date,
		DueDate:       input.DueDate,
		Notes:         input.Notes,
	}
	if err := s.repo.Create(ctx, deduction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create deduction")
	}
	return deduction, nil
}

func (s *service) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Deduction, error) {
	deduction, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deduction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deduction")
	}
	return deduction, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter, params pagination.Params) (pagination.Page[models.Deduction], error) {
	rows, err := s.repo.List(ctx, tenantID, filter, params)
	if err != nil {
		return pagination.Page[models.Deduction]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list deductions")
	}
	return pagination.NewPage(rows, params.Limit, func(d models.Deduction) pagination.Cursor {
		return pagination.Cursor{CreatedAt: d.CreatedAt, ID: d.ID}
	}), nil
}

// Transition applies a status action. Clearing stamps who resolved it and when.
func (s *service) Transition(ctx context.Context, tenantID, actorID, id uuid.UUID, action Action, notes *string) (*models.Deduction, error) {
	target, ok := action.Target()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown action %q", action))
	}

	deduction, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !deduction.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(
			pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move deduction from %s to %s", deduction.Status, target),
		)
	}

	deduction.Status = target
	if notes != nil {
		deduction.Notes = notes
	}
	if target == enums.DeductionStatusCleared {
		now := s.now().UTC()
		deduction.ResolvedAt = &now
		deduction.ResolvedBy = &actorID
	}

	if err := s.repo.Update(ctx, deduction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "transition deduction")
	}
	return deduction, nil
}

func (s *service) OutstandingExposure(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	total, err := s.repo.OutstandingExposure(ctx, tenantID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum exposure")
	}
	return total, nil
}
