package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotionStatusHappyPath(t *testing.T) {
	assert.True(t, PromotionStatusDraft.CanTransitionTo(PromotionStatusPlanned))
	assert.True(t, PromotionStatusPlanned.CanTransitionTo(PromotionStatusApproved))
	assert.True(t, PromotionStatusApproved.CanTransitionTo(PromotionStatusActive))
	assert.True(t, PromotionStatusActive.CanTransitionTo(PromotionStatusCompleted))
}

func TestPromotionStatusNoSkipping(t *testing.T) {
	assert.False(t, PromotionStatusDraft.CanTransitionTo(PromotionStatusApproved))
	assert.False(t, PromotionStatusDraft.CanTransitionTo(PromotionStatusActive))
	assert.False(t, PromotionStatusPlanned.CanTransitionTo(PromotionStatusActive))
	assert.False(t, PromotionStatusApproved.CanTransitionTo(PromotionStatusCompleted))
}

func TestPromotionStatusNoBackwardMoves(t *testing.T) {
	assert.False(t, PromotionStatusApproved.CanTransitionTo(PromotionStatusPlanned))
	assert.False(t, PromotionStatusActive.CanTransitionTo(PromotionStatusApproved))
	assert.False(t, PromotionStatusCompleted.CanTransitionTo(PromotionStatusActive))
}

func TestPromotionStatusCancel(t *testing.T) {
	for _, from := range []PromotionStatus{PromotionStatusDraft, PromotionStatusPlanned, PromotionStatusApproved, PromotionStatusActive} {
		assert.True(t, from.CanTransitionTo(PromotionStatusCancelled), "from %s", from)
	}
	for _, from := range []PromotionStatus{PromotionStatusCompleted, PromotionStatusCancelled, PromotionStatusArchived} {
		assert.False(t, from.CanTransitionTo(PromotionStatusCancelled), "from %s", from)
	}
}

func TestPromotionStatusArchive(t *testing.T) {
	assert.True(t, PromotionStatusCompleted.CanTransitionTo(PromotionStatusArchived))
	assert.True(t, PromotionStatusCancelled.CanTransitionTo(PromotionStatusArchived))
	assert.False(t, PromotionStatusActive.CanTransitionTo(PromotionStatusArchived))
	assert.False(t, PromotionStatusArchived.CanTransitionTo(PromotionStatusArchived))
}

func TestPromotionStatusTerminal(t *testing.T) {
	assert.True(t, PromotionStatusCompleted.IsTerminal())
	assert.True(t, PromotionStatusCancelled.IsTerminal())
	assert.True(t, PromotionStatusArchived.IsTerminal())
	assert.False(t, PromotionStatusActive.IsTerminal())
}

func TestParsePromotionStatus(t *testing.T) {
	status, err := ParsePromotionStatus("Active")
	require.NoError(t, err)
	assert.Equal(t, PromotionStatusActive, status)

	_, err = ParsePromotionStatus("ACTIVE")
	assert.Error(t, err)
}
