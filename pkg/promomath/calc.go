// Package promomath holds the derived-metric arithmetic shared across the
// dashboard surfaces. All functions are pure and never fail: degenerate
// inputs (zero denominators) yield a defined zero instead of an error.
package promomath

// ROI returns (revenue - spend) / spend as a fraction. Zero spend yields 0.
// Negative values are valid and indicate a loss.
func ROI(revenue, spend float64) float64 {
	if spend == 0 {
		return 0
	}
	return (revenue - spend) / spend
}

// Margin returns (revenue - cost) / revenue as a fraction. Zero revenue yields 0.
func Margin(revenue, cost float64) float64 {
	if revenue == 0 {
		return 0
	}
	return (revenue - cost) / revenue
}

// Lift returns (promoted - baseline) / baseline as a fraction. Zero baseline yields 0.
func Lift(promoted, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (promoted - baseline) / baseline
}

// Progress returns current/target clamped to a defined zero when target is 0.
func Progress(current, target float64) float64 {
	if target == 0 {
		return 0
	}
	return current / target
}
