package service

// Scorer converts a trigger list into a confidence percentage in [0, 100].
// HeuristicScorer is the rule-based implementation.
type Scorer interface {
	Score(triggers []Trigger) float64
}
