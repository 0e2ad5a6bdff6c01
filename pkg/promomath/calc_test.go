package promomath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestROI(t *testing.T) {
	assert.InDelta(t, 0.768, ROI(44200, 25000), 0.0001)
	assert.InDelta(t, -0.5, ROI(500, 1000), 0.0001)
	assert.Zero(t, ROI(44200, 0))
	assert.Zero(t, ROI(0, 0))
}

func TestMargin(t *testing.T) {
	assert.InDelta(t, 0.5, Margin(8.50, 4.25), 0.0001)
	assert.InDelta(t, -1.0, Margin(5, 10), 0.0001)
	assert.Zero(t, Margin(0, 4.25))
}

func TestLift(t *testing.T) {
	assert.InDelta(t, 0.5, Lift(1500, 1000), 0.0001)
	assert.InDelta(t, -0.25, Lift(750, 1000), 0.0001)
	assert.Zero(t, Lift(1500, 0))
}

func TestProgress(t *testing.T) {
	assert.InDelta(t, 0.65, Progress(3250000, 5000000), 0.0001)
	assert.Zero(t, Progress(100, 0))
	assert.InDelta(t, 1.2, Progress(120, 100), 0.0001)
}
