package valueobject

import "fmt"

// RiskTier is an immutable value object representing the discrete risk
// classification of an analysis. Tier breakpoints are owned by the
// scoring policy, not by this type.
type RiskTier struct {
	value string
}

var (
	RiskTierLow    = RiskTier{value: "low"}
	RiskTierMedium = RiskTier{value: "medium"}
	RiskTierHigh   = RiskTier{value: "high"}
)

// RiskTierFromString reconstructs a RiskTier from its string representation.
func RiskTierFromString(s string) (RiskTier, error) {
	switch s {
	case "low":
		return RiskTierLow, nil
	case "medium":
		return RiskTierMedium, nil
	case "high":
		return RiskTierHigh, nil
	default:
		return RiskTier{}, fmt.Errorf("invalid risk tier: %s", s)
	}
}

// String returns the string representation.
func (r RiskTier) String() string {
	return r.value
}

// IsZero returns true if the RiskTier has not been set.
func (r RiskTier) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskTier.
func (r RiskTier) Equal(other RiskTier) bool {
	return r.value == other.value
}

// AtLeast reports whether this tier is the same as or more severe than other.
func (r RiskTier) AtLeast(other RiskTier) bool {
	return rank(r) >= rank(other)
}

func rank(r RiskTier) int {
	switch r.value {
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	default:
		return 0
	}
}
