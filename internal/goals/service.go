package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/promomath"
)

// CreateInput carries the fields accepted when setting a goal.
type CreateInput struct {
	Type   enums.OptimizationGoal `json:"type" validate:"required"`
	Target float64                `json:"target"`
	Period string                 `json:"period" validate:"required"`
}

// GoalDTO is a goal with its computed progress fraction.
type GoalDTO struct {
	models.CompanyGoal
	Progress float64 `json:"progress"`
}

// Service exposes company goal tracking.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*GoalDTO, error)
	List(ctx context.Context, tenantID uuid.UUID, period string) ([]GoalDTO, error)
	UpdateProgress(ctx context.Context, tenantID, id uuid.UUID, current float64) (*GoalDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a goal service over the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("goal repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*GoalDTO, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid goal type")
	}
	if input.Target <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target must be positive")
	}
	goal := &models.CompanyGoal{
		TenantID: tenantID,
		Type:     input.Type,
		Target:   input.Target,
		Period:   strings.TrimSpace(input.Period),
	}
	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create goal")
	}
	return withProgress(goal), nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, period string) ([]GoalDTO, error) {
	rows, err := s.repo.ListByPeriod(ctx, tenantID, strings.TrimSpace(period))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list goals")
	}
	out := make([]GoalDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *withProgress(&rows[i]))
	}
	return out, nil
}

func (s *service) UpdateProgress(ctx context.Context, tenantID, id uuid.UUID, current float64) (*GoalDTO, error) {
	if current < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "progress must be non-negative")
	}
	if err := s.repo.UpdateCurrent(ctx, tenantID, id, current); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "goal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update goal")
	}
	goal, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load goal")
	}
	return withProgress(goal), nil
}

func withProgress(goal *models.CompanyGoal) *GoalDTO {
	return &GoalDTO{
		CompanyGoal: *goal,
		Progress:    promomath.Progress(goal.Current, goal.Target),
	}
}
