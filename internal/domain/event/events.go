package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeAnalysisCompleted is emitted when any analysis finishes.
	EventTypeAnalysisCompleted = "phishguard.analysis.completed"

	// EventTypeHighRiskDetected is emitted when an analysis lands in the
	// high risk tier.
	EventTypeHighRiskDetected = "phishguard.high_risk.detected"
)

// AnalysisCompleted is published after every completed URL or email analysis.
type AnalysisCompleted struct {
	AnalysisID    uuid.UUID `json:"analysis_id"`
	Kind          string    `json:"kind"`
	Subject       string    `json:"subject"`
	ConfidencePct float64   `json:"confidence_pct"`
	Verdict       bool      `json:"verdict"`
	RiskTier      string    `json:"risk_tier"`
	Reasons       []string  `json:"reasons"`
	ScoringPath   string    `json:"scoring_path"`
	AnalyzedAt    time.Time `json:"analyzed_at"`
}

// EventType returns the event type identifier.
func (e AnalysisCompleted) EventType() string {
	return EventTypeAnalysisCompleted
}

// AggregateID returns the analysis ID as the aggregate identifier.
func (e AnalysisCompleted) AggregateID() uuid.UUID {
	return e.AnalysisID
}

// OccurredAt returns the completion time of the analysis.
func (e AnalysisCompleted) OccurredAt() time.Time {
	return e.AnalyzedAt
}

// HighRiskDetected is published when content is classified into the high
// risk tier, so downstream consumers can alert or block.
type HighRiskDetected struct {
	AnalysisID    uuid.UUID `json:"analysis_id"`
	Kind          string    `json:"kind"`
	Subject       string    `json:"subject"`
	ConfidencePct float64   `json:"confidence_pct"`
	Reasons       []string  `json:"reasons"`
	DetectedAt    time.Time `json:"detected_at"`
}

// EventType returns the event type identifier.
func (e HighRiskDetected) EventType() string {
	return EventTypeHighRiskDetected
}

// AggregateID returns the analysis ID as the aggregate identifier.
func (e HighRiskDetected) AggregateID() uuid.UUID {
	return e.AnalysisID
}

// OccurredAt returns the detection time.
func (e HighRiskDetected) OccurredAt() time.Time {
	return e.DetectedAt
}
