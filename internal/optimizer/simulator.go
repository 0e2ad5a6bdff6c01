package optimizer

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Richyi/promosophia/pkg/db/models"
	"github.com/Richyi/promosophia/pkg/enums"
	"github.com/Richyi/promosophia/pkg/promomath"
)

// Predictor produces an allocation for an optimization request. The built-in
// simulator satisfies it; a real prediction service can replace it behind the
// same boundary.
type Predictor interface {
	Predict(ctx context.Context, req OptimizationRequest, retailers []models.Retailer, products []models.Product) ([]Allocation, float64, error)
}

// Simulator is a deterministic allocation model over retailer tiers and
// product margins. It is not a solver.
type Simulator struct {
	maxAllocations int
}

// NewSimulator builds the simulator with a cap on allocation slots.
func NewSimulator(maxAllocations int) *Simulator {
	if maxAllocations <= 0 {
		maxAllocations = 24
	}
	return &Simulator{maxAllocations: maxAllocations}
}

type candidate struct {
	retailer *models.Retailer
	product  *models.Product
	score    float64
}

// Predict spreads the budget across retailer x product pairs proportionally to
// a goal-weighted score and derives per-slot predictions from product
// economics and retailer tier.
func (s *Simulator) Predict(ctx context.Context, req OptimizationRequest, retailers []models.Retailer, products []models.Product) ([]Allocation, float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if len(retailers) == 0 || len(products) == 0 {
		return nil, 0, fmt.Errorf("no active retailers or products to allocate against")
	}

	candidates := make([]candidate, 0, len(retailers)*len(products))
	for i := range retailers {
		for j := range products {
			c := candidate{retailer: &retailers[i], product: &products[j]}
			c.score = score(req.Goal, c.retailer, c.product)
			if c.score > 0 {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, 0, fmt.Errorf("no viable allocation candidates")
	}

	// Stable order keeps runs reproducible for identical inputs.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].retailer.Name != candidates[j].retailer.Name {
			return candidates[i].retailer.Name < candidates[j].retailer.Name
		}
		return candidates[i].product.SKU < candidates[j].product.SKU
	})
	if len(candidates) > s.maxAllocations {
		candidates = candidates[:s.maxAllocations]
	}

	var totalScore float64
	for _, c := range candidates {
		totalScore += c.score
	}

	allocations := make([]Allocation, 0, len(candidates))
	for _, c := range candidates {
		share := c.score / totalScore
		budget := round2(req.Budget * share)
		if budget <= 0 {
			continue
		}

		depth := clamp(0.10+0.15*c.retailer.Tier.Weight(), req.Constraints.MinDiscount, req.Constraints.MaxDiscount)
		price, _ := c.product.BasePrice.Float64()
		if price <= 0 {
			continue
		}

		// Spend buys discounted units; tier weight scales expected sell-through.
		volume := int64(math.Floor(budget / (price * depth) * c.retailer.Tier.Weight()))
		if volume <= 0 {
			continue
		}
		revenue := round2(float64(volume) * price * (1 - depth))
		lift := round2(depth * c.retailer.Tier.Weight() * 200)
		margin := c.product.Margin * (1 - depth)

		allocations = append(allocations, Allocation{
			RetailerID:       c.retailer.ID,
			RetailerName:     c.retailer.Name,
			ProductID:        c.product.ID,
			ProductName:      c.product.Name,
			Budget:           budget,
			DiscountDepth:    depth,
			PredictedLift:    lift,
			PredictedRevenue: revenue,
			PredictedVolume:  volume,
			PredictedMargin:  round4(margin),
			PredictedROI:     round4(promomath.ROI(revenue, budget)),
		})
	}
	if len(allocations) == 0 {
		return nil, 0, fmt.Errorf("budget too small to fund any allocation")
	}

	confidence := clamp(0.55+0.02*float64(len(allocations)), 0, 0.95)
	return allocations, confidence, nil
}

func score(goal enums.OptimizationGoal, retailer *models.Retailer, product *models.Product) float64 {
	weight := retailer.Tier.Weight()
	price, _ := product.BasePrice.Float64()
	switch goal {
	case enums.GoalVolume:
		if price <= 0 {
			return 0
		}
		return weight / price
	case enums.GoalMargin:
		return weight * product.Margin
	default: // Revenue
		return weight * price
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi > 0 && v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

var _ Predictor = (*Simulator)(nil)
