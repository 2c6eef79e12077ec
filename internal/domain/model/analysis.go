package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phishguard/phishguard/internal/domain/event"
	"github.com/phishguard/phishguard/internal/domain/valueobject"
	"github.com/phishguard/phishguard/pkg/events"
)

// AnalysisKind distinguishes the two analyzable subject types.
type AnalysisKind string

const (
	AnalysisKindURL   AnalysisKind = "url"
	AnalysisKindEmail AnalysisKind = "email"
)

// ScoringPath records which scoring path produced the confidence.
type ScoringPath string

const (
	PathHeuristic  ScoringPath = "heuristic"
	PathClassifier ScoringPath = "classifier"
)

// Analysis is the aggregate root for one risk analysis. It is produced
// fresh per request and never cached or mutated after Complete.
type Analysis struct {
	events.EventCollector

	id            uuid.UUID
	kind          AnalysisKind
	subject       string
	confidencePct float64
	verdict       bool
	tier          valueobject.RiskTier
	reasons       []string
	path          ScoringPath
	analyzedAt    time.Time
}

// NewAnalysis creates an unscored analysis for the given subject. The
// subject is the raw URL for the URL kind and the sender address for the
// email kind.
func NewAnalysis(kind AnalysisKind, subject string) (*Analysis, error) {
	if kind != AnalysisKindURL && kind != AnalysisKindEmail {
		return nil, fmt.Errorf("invalid analysis kind: %q", kind)
	}
	if subject == "" {
		return nil, fmt.Errorf("analysis subject is required")
	}

	return &Analysis{
		id:      uuid.New(),
		kind:    kind,
		subject: subject,
		tier:    valueobject.RiskTierLow,
	}, nil
}

// Complete applies the scoring outcome to the analysis and records the
// resulting domain events. This is the core domain operation.
func (a *Analysis) Complete(
	confidencePct float64,
	verdict bool,
	tier valueobject.RiskTier,
	reasons []string,
	path ScoringPath,
) error {
	if confidencePct < 0 || confidencePct > 100 {
		return fmt.Errorf("confidence must be between 0 and 100, got %g", confidencePct)
	}
	if tier.IsZero() {
		return fmt.Errorf("risk tier is required")
	}

	a.confidencePct = confidencePct
	a.verdict = verdict
	a.tier = tier
	a.reasons = reasons
	a.path = path
	a.analyzedAt = time.Now().UTC()

	a.Record(event.AnalysisCompleted{
		AnalysisID:    a.id,
		Kind:          string(a.kind),
		Subject:       a.subject,
		ConfidencePct: a.confidencePct,
		Verdict:       a.verdict,
		RiskTier:      a.tier.String(),
		Reasons:       a.reasons,
		ScoringPath:   string(a.path),
		AnalyzedAt:    a.analyzedAt,
	})

	if a.tier.Equal(valueobject.RiskTierHigh) {
		a.Record(event.HighRiskDetected{
			AnalysisID:    a.id,
			Kind:          string(a.kind),
			Subject:       a.subject,
			ConfidencePct: a.confidencePct,
			Reasons:       a.reasons,
			DetectedAt:    a.analyzedAt,
		})
	}

	return nil
}

// --- Accessors ---

func (a *Analysis) ID() uuid.UUID                 { return a.id }
func (a *Analysis) Kind() AnalysisKind            { return a.kind }
func (a *Analysis) Subject() string               { return a.subject }
func (a *Analysis) ConfidencePct() float64        { return a.confidencePct }
func (a *Analysis) Verdict() bool                 { return a.verdict }
func (a *Analysis) Tier() valueobject.RiskTier    { return a.tier }
func (a *Analysis) Reasons() []string             { return a.reasons }
func (a *Analysis) Path() ScoringPath             { return a.path }
func (a *Analysis) AnalyzedAt() time.Time         { return a.analyzedAt }
