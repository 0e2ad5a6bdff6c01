package optimizer

import (
	"github.com/google/uuid"

	"github.com/Richyi/promosophia/pkg/enums"
)

// Constraints bound the discount depth the optimizer may allocate.
type Constraints struct {
	MinDiscount float64 `json:"min_discount"`
	MaxDiscount float64 `json:"max_discount"`
}

// OptimizationRequest asks for a budget allocation across the tenant's active
// retailer and product pairs.
type OptimizationRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Description *string                `json:"description,omitempty"`
	Goal        enums.OptimizationGoal `json:"goal" validate:"required"`
	Budget      float64                `json:"budget"`
	Constraints Constraints            `json:"constraints"`
}

// Allocation is one recommended retailer x product promotion slot.
type Allocation struct {
	RetailerID       uuid.UUID `json:"retailer_id"`
	RetailerName     string    `json:"retailer_name"`
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	Budget           float64   `json:"budget"`
	DiscountDepth    float64   `json:"discount_depth"`
	PredictedLift    float64   `json:"predicted_lift"`
	PredictedRevenue float64   `json:"predicted_revenue"`
	PredictedVolume  int64     `json:"predicted_volume"`
	PredictedMargin  float64   `json:"predicted_margin"`
	PredictedROI     float64   `json:"predicted_roi"`
}

// OptimizationResult is the predictor's answer plus run metadata.
type OptimizationResult struct {
	ScenarioID       uuid.UUID              `json:"scenario_id"`
	Goal             enums.OptimizationGoal `json:"goal"`
	Allocations      []Allocation           `json:"allocations"`
	TotalBudget      float64                `json:"total_budget"`
	PredictedRevenue float64                `json:"predicted_revenue"`
	PredictedVolume  int64                  `json:"predicted_volume"`
	PredictedROI     float64                `json:"predicted_roi"`
	Confidence       float64                `json:"confidence"`
	ProcessingTimeMS int64                  `json:"processing_time_ms"`
}
