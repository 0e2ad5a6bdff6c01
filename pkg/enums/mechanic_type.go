package enums

import "fmt"

// MechanicType identifies the promotion mechanic variant.
type MechanicType string

const (
	MechanicTPR     MechanicType = "TPR"
	MechanicBOGO    MechanicType = "BOGO"
	MechanicDisplay MechanicType = "DISPLAY"
	MechanicFeature MechanicType = "FEATURE"
	MechanicCoupon  MechanicType = "COUPON"
	MechanicLoyalty MechanicType = "LOYALTY"
	MechanicBundle  MechanicType = "BUNDLE"
)

var validMechanicTypes = []MechanicType{
	MechanicTPR,
	MechanicBOGO,
	MechanicDisplay,
	MechanicFeature,
	MechanicCoupon,
	MechanicLoyalty,
	MechanicBundle,
}

// String implements fmt.Stringer.
func (m MechanicType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MechanicType.
func (m MechanicType) IsValid() bool {
	for _, candidate := range validMechanicTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// UsesQuantities reports whether the mechanic carries buy/get quantity fields.
func (m MechanicType) UsesQuantities() bool {
	return m == MechanicBOGO || m == MechanicBundle
}

// UsesDiscountDepth reports whether the mechanic is priced by discount depth.
func (m MechanicType) UsesDiscountDepth() bool {
	return m == MechanicTPR || m == MechanicDisplay
}

// ParseMechanicType converts raw input into a MechanicType.
func ParseMechanicType(value string) (MechanicType, error) {
	for _, candidate := range validMechanicTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid mechanic type %q", value)
}
