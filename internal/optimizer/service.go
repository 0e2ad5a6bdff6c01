package optimizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/pkg/config"
	"github.com/Richyi/promosophia/pkg/db/models"
	dbtypes "github.com/Richyi/promosophia/pkg/db/types"
	pkgerrors "github.com/Richyi/promosophia/pkg/errors"
	"github.com/Richyi/promosophia/pkg/logger"
	"github.com/Richyi/promosophia/pkg/metrics"
)

type retailerLister interface {
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]models.Retailer, error)
}

type productLister interface {
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]models.Product, error)
}

// Service runs optimizations and manages the resulting scenarios.
type Service interface {
	Run(ctx context.Context, tenantID, actorID uuid.UUID, req OptimizationRequest) (*OptimizationResult, error)
	GetScenario(ctx context.Context, tenantID, id uuid.UUID) (*models.Scenario, error)
	ListScenarios(ctx context.Context, tenantID uuid.UUID) ([]models.Scenario, error)
}

type service struct {
	repo      *Repository
	predictor Predictor
	retailers retailerLister
	products  productLister
	cfg       config.OptimizerConfig
	metrics   *metrics.OptimizerMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewService wires the optimizer service. Metrics may be nil in tests.
func NewService(
	repo *Repository,
	predictor Predictor,
	retailers retailerLister,
	products productLister,
	cfg config.OptimizerConfig,
	m *metrics.OptimizerMetrics,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("scenario repository required")
	}
	if predictor == nil {
		return nil, fmt.Errorf("predictor required")
	}
	if retailers == nil || products == nil {
		return nil, fmt.Errorf("retailer and product listers required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		predictor: predictor,
		retailers: retailers,
		products:  products,
		cfg:       cfg,
		metrics:   m,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// Run validates the request, asks the predictor for an allocation, persists
// the scenario, and returns the result with measured processing time.
func (s *service) Run(ctx context.Context, tenantID, actorID uuid.UUID, req OptimizationRequest) (*OptimizationResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	runCtx := ctx
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	started := s.now()

	activeRetailers, err := s.retailers.ListActive(runCtx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list retailers")
	}
	activeProducts, err := s.products.ListActive(runCtx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	allocations, confidence, err := s.predictor.Predict(runCtx, req, activeRetailers, activeProducts)
	elapsed := s.now().Sub(started)
	s.metrics.ObserveRun(req.Goal.String(), elapsed, err)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "prediction failed")
	}

	result := summarize(req, allocations, confidence, elapsed)

	scenario := &models.Scenario{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Goal:        req.Goal,
		Budget:      req.Budget,
		Constraints: dbtypes.JSONMap{
			"min_discount": req.Constraints.MinDiscount,
			"max_discount": req.Constraints.MaxDiscount,
		},
		Result: dbtypes.JSONMap{
			"allocations":        result.Allocations,
			"predicted_revenue":  result.PredictedRevenue,
			"predicted_volume":   result.PredictedVolume,
			"predicted_roi":      result.PredictedROI,
			"confidence":         result.Confidence,
			"processing_time_ms": result.ProcessingTimeMS,
		},
		IsActive:  true,
		CreatedBy: actorID,
	}
	if err := s.repo.Create(ctx, scenario); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist scenario")
	}
	result.ScenarioID = scenario.ID

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"scenario_id": scenario.ID.String(),
		"goal":        req.Goal.String(),
		"allocations": len(result.Allocations),
		"elapsed_ms":  result.ProcessingTimeMS,
	}), "optimization run completed")
	return result, nil
}

func (s *service) GetScenario(ctx context.Context, tenantID, id uuid.UUID) (*models.Scenario, error) {
	scenario, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "scenario not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load scenario")
	}
	return scenario, nil
}

func (s *service) ListScenarios(ctx context.Context, tenantID uuid.UUID) ([]models.Scenario, error) {
	rows, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list scenarios")
	}
	return rows, nil
}

func validateRequest(req OptimizationRequest) error {
	if !req.Goal.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid optimization goal")
	}
	if req.Budget <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "budget must be positive")
	}
	c := req.Constraints
	if c.MinDiscount < 0 || c.MaxDiscount > 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount bounds must be fractions between 0 and 1")
	}
	if c.MaxDiscount > 0 && c.MinDiscount > c.MaxDiscount {
		return pkgerrors.New(pkgerrors.CodeValidation, "min discount exceeds max discount")
	}
	return nil
}

func summarize(req OptimizationRequest, allocations []Allocation, confidence float64, elapsed time.Duration) *OptimizationResult {
	var (
		revenue float64
		volume  int64
		budget  float64
	)
	for _, a := range allocations {
		revenue += a.PredictedRevenue
		volume += a.PredictedVolume
		budget += a.Budget
	}
	roi := 0.0
	if budget > 0 {
		roi = round4((revenue - budget) / budget)
	}
	return &OptimizationResult{
		Goal:             req.Goal,
		Allocations:      allocations,
		TotalBudget:      round2(budget),
		PredictedRevenue: round2(revenue),
		PredictedVolume:  volume,
		PredictedROI:     roi,
		Confidence:       confidence,
		ProcessingTimeMS: elapsed.Milliseconds(),
	}
}
