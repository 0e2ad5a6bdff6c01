package enums

import "fmt"

// DeductionStatus is the lifecycle state of a retailer deduction.
type DeductionStatus string

const (
	DeductionStatusOpen      DeductionStatus = "Open"
	DeductionStatusPending   DeductionStatus = "Pending"
	DeductionStatusCleared   DeductionStatus = "Cleared"
	DeductionStatusContested DeductionStatus = "Contested"
)

var validDeductionStatuses = []DeductionStatus{
	DeductionStatusOpen,
	DeductionStatusPending,
	DeductionStatusCleared,
	DeductionStatusContested,
}

// String implements fmt.Stringer.
func (d DeductionStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeductionStatus.
func (d DeductionStatus) IsValid() bool {
	for _, candidate := range validDeductionStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// IsOutstanding reports whether the deduction still counts toward exposure.
func (d DeductionStatus) IsOutstanding() bool {
	return d != DeductionStatusCleared
}

// CanTransitionTo enforces Open → {Pending, Cleared, Contested},
// Pending → {Cleared, Contested}, Contested → Cleared. Cleared is terminal.
func (d DeductionStatus) CanTransitionTo(next DeductionStatus) bool {
	switch d {
	case DeductionStatusOpen:
		return next == DeductionStatusPending || next == DeductionStatusCleared || next == DeductionStatusContested
	case DeductionStatusPending:
		return next == DeductionStatusCleared || next == DeductionStatusContested
	case DeductionStatusContested:
		return next == DeductionStatusCleared
	default:
		return false
	}
}

// ParseDeductionStatus converts raw input into a DeductionStatus.
func ParseDeductionStatus(value string) (DeductionStatus, error) {
	for _, candidate := range validDeductionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid deduction status %q", value)
}
