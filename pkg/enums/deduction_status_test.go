package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeductionStatusTransitions(t *testing.T) {
	assert.True(t, DeductionStatusOpen.CanTransitionTo(DeductionStatusPending))
	assert.True(t, DeductionStatusOpen.CanTransitionTo(DeductionStatusCleared))
	assert.True(t, DeductionStatusOpen.CanTransitionTo(DeductionStatusContested))
	assert.True(t, DeductionStatusPending.CanTransitionTo(DeductionStatusCleared))
	assert.True(t, DeductionStatusPending.CanTransitionTo(DeductionStatusContested))
	assert.True(t, DeductionStatusContested.CanTransitionTo(DeductionStatusCleared))
}

func TestDeductionStatusClearedIsTerminal(t *testing.T) {
	for _, next := range validDeductionStatuses {
		assert.False(t, DeductionStatusCleared.CanTransitionTo(next), "to %s", next)
	}
}

func TestDeductionStatusNoReopen(t *testing.T) {
	assert.False(t, DeductionStatusPending.CanTransitionTo(DeductionStatusOpen))
	assert.False(t, DeductionStatusContested.CanTransitionTo(DeductionStatusOpen))
	assert.False(t, DeductionStatusContested.CanTransitionTo(DeductionStatusPending))
}

func TestDeductionStatusOutstanding(t *testing.T) {
	assert.True(t, DeductionStatusOpen.IsOutstanding())
	assert.True(t, DeductionStatusPending.IsOutstanding())
	assert.True(t, DeductionStatusContested.IsOutstanding())
	assert.False(t, DeductionStatusCleared.IsOutstanding())
}
