package enums

import "fmt"

// PromotionStatus is the lifecycle state of a trade promotion.
type PromotionStatus string

const (
	PromotionStatusDraft     PromotionStatus = "Draft"
	PromotionStatusPlanned   PromotionStatus = "Planned"
	PromotionStatusApproved  PromotionStatus = "Approved"
	PromotionStatusActive    PromotionStatus = "Active"
	PromotionStatusCompleted PromotionStatus = "Completed"
	PromotionStatusCancelled PromotionStatus = "Cancelled"
	PromotionStatusArchived  PromotionStatus = "Archived"
)

var validPromotionStatuses = []PromotionStatus{
	PromotionStatusDraft,
	PromotionStatusPlanned,
	PromotionStatusApproved,
	PromotionStatusActive,
	PromotionStatusCompleted,
	PromotionStatusCancelled,
	PromotionStatusArchived,
}

// String implements fmt.Stringer.
func (p PromotionStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PromotionStatus.
func (p PromotionStatus) IsValid() bool {
	for _, candidate := range validPromotionStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed except archive.
func (p PromotionStatus) IsTerminal() bool {
	return p == PromotionStatusCompleted || p == PromotionStatusCancelled || p == PromotionStatusArchived
}

// CanTransitionTo enforces the business-process ordering
// Draft → Planned → Approved → Active → Completed, with Cancel reachable from
// any non-terminal state and Archive reachable from Completed/Cancelled.
func (p PromotionStatus) CanTransitionTo(next PromotionStatus) bool {
	switch next {
	case PromotionStatusPlanned:
		return p == PromotionStatusDraft
	case PromotionStatusApproved:
		return p == PromotionStatusPlanned
	case PromotionStatusActive:
		return p == PromotionStatusApproved
	case PromotionStatusCompleted:
		return p == PromotionStatusActive
	case PromotionStatusCancelled:
		return !p.IsTerminal()
	case PromotionStatusArchived:
		return p == PromotionStatusCompleted || p == PromotionStatusCancelled
	default:
		return false
	}
}

// ParsePromotionStatus converts raw input into a PromotionStatus.
func ParsePromotionStatus(value string) (PromotionStatus, error) {
	for _, candidate := range validPromotionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion status %q", value)
}
