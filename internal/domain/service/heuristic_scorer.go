package service

import "github.com/shopspring/decimal"

// HeuristicScorer aggregates trigger weights into a confidence
// percentage. It is the default and always-available scoring path: it
// needs no model and never fails for a well-formed trigger list.
type HeuristicScorer struct{}

// NewHeuristicScorer creates a new HeuristicScorer.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Score sums the trigger weights, clamps the sum to [0, 1] and converts
// it to a percentage. Weight arithmetic runs on decimals so a sum like
// 0.4 + 0.2 yields exactly 60, not a float artifact. An empty trigger
// list yields 0.
func (s *HeuristicScorer) Score(triggers []Trigger) float64 {
	sum := weightSum(triggers)

	one := decimal.NewFromInt(1)
	if sum.GreaterThan(one) {
		sum = one
	}
	if sum.IsNegative() {
		sum = decimal.Zero
	}

	return sum.Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// rawSum returns the unclamped weight sum of the triggers. The email
// extractor uses it to judge embedded URLs against the sub-threshold.
func rawSum(triggers []Trigger) float64 {
	return weightSum(triggers).InexactFloat64()
}

func weightSum(triggers []Trigger) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range triggers {
		sum = sum.Add(decimal.NewFromFloat(t.Weight))
	}
	return sum
}

// Reasons returns the ordered reason strings of the triggers, one entry
// per fired indicator, never reordered.
func Reasons(triggers []Trigger) []string {
	reasons := make([]string, len(triggers))
	for i, t := range triggers {
		reasons[i] = t.Reason
	}
	return reasons
}
