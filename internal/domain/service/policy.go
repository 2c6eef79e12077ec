package service

import "github.com/phishguard/phishguard/internal/domain/valueobject"

// RiskPolicy maps a confidence percentage to a risk tier and a boolean
// verdict. The verdict threshold and the tier breakpoints are independent
// knobs: the classifier path keeps its own verdict threshold inside the
// ClassifierScorer, while tiers always come from here. The mapping is
// total over [0, 100] and monotonic in confidence.
type RiskPolicy struct {
	// VerdictThresholdPct is the confidence at or above which the
	// heuristic path flags content as phishing/spam.
	VerdictThresholdPct float64

	// TierHighPct and TierMediumPct are the tier breakpoints.
	TierHighPct   float64
	TierMediumPct float64
}

// DefaultRiskPolicy returns the stock thresholds: verdict at 50,
// high at 70, medium at 40.
func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		VerdictThresholdPct: 50,
		TierHighPct:         70,
		TierMediumPct:       40,
	}
}

// Tier derives the risk tier for a confidence percentage.
func (p RiskPolicy) Tier(confidencePct float64) valueobject.RiskTier {
	switch {
	case confidencePct >= p.TierHighPct:
		return valueobject.RiskTierHigh
	case confidencePct >= p.TierMediumPct:
		return valueobject.RiskTierMedium
	default:
		return valueobject.RiskTierLow
	}
}

// Verdict derives the boolean phishing/spam flag for a confidence
// percentage on the heuristic path.
func (p RiskPolicy) Verdict(confidencePct float64) bool {
	return confidencePct >= p.VerdictThresholdPct
}
