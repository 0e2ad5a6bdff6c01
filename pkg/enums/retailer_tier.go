package enums

import "fmt"

// RetailerTier buckets retailers by strategic importance.
type RetailerTier string

const (
	RetailerTierA RetailerTier = "A"
	RetailerTierB RetailerTier = "B"
	RetailerTierC RetailerTier = "C"
)

var validRetailerTiers = []RetailerTier{RetailerTierA, RetailerTierB, RetailerTierC}

// String implements fmt.Stringer.
func (t RetailerTier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known RetailerTier.
func (t RetailerTier) IsValid() bool {
	for _, candidate := range validRetailerTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// Weight is the relative allocation weight used by the optimizer simulator.
func (t RetailerTier) Weight() float64 {
	switch t {
	case RetailerTierA:
		return 1.0
	case RetailerTierB:
		return 0.7
	case RetailerTierC:
		return 0.4
	default:
		return 0.4
	}
}

// ParseRetailerTier converts raw input into a RetailerTier.
func ParseRetailerTier(value string) (RetailerTier, error) {
	for _, candidate := range validRetailerTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid retailer tier %q", value)
}
