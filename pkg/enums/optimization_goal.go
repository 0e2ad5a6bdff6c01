package enums

import "fmt"

// OptimizationGoal is the objective an optimization run (or company goal) targets.
type OptimizationGoal string

const (
	GoalRevenue OptimizationGoal = "Revenue"
	GoalVolume  OptimizationGoal = "Volume"
	GoalMargin  OptimizationGoal = "Margin"
)

var validOptimizationGoals = []OptimizationGoal{
	GoalRevenue,
	GoalVolume,
	GoalMargin,
}

// String implements fmt.Stringer.
func (g OptimizationGoal) String() string {
	return string(g)
}

// IsValid reports whether the value is a known OptimizationGoal.
func (g OptimizationGoal) IsValid() bool {
	for _, candidate := range validOptimizationGoals {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseOptimizationGoal converts raw input into an OptimizationGoal.
func ParseOptimizationGoal(value string) (OptimizationGoal, error) {
	for _, candidate := range validOptimizationGoals {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid optimization goal %q", value)
}
