package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishguard/phishguard/internal/domain/event"
	"github.com/phishguard/phishguard/internal/domain/model"
	"github.com/phishguard/phishguard/internal/domain/valueobject"
)

func TestNewAnalysis_Validation(t *testing.T) {
	_, err := model.NewAnalysis("transaction", "http://example.com")
	assert.Error(t, err)

	_, err = model.NewAnalysis(model.AnalysisKindURL, "")
	assert.Error(t, err)

	a, err := model.NewAnalysis(model.AnalysisKindURL, "http://example.com")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID().String(), "00000000-0000-0000-0000-000000000000")
	assert.True(t, a.Tier().Equal(valueobject.RiskTierLow))
}

func TestAnalysis_Complete(t *testing.T) {
	a, err := model.NewAnalysis(model.AnalysisKindURL, "http://192.168.1.1/secure-login")
	require.NoError(t, err)

	reasons := []string{"IP Address Used Instead of Domain", "Suspicious Keywords in URL"}
	err = a.Complete(60, true, valueobject.RiskTierMedium, reasons, model.PathHeuristic)
	require.NoError(t, err)

	assert.Equal(t, 60.0, a.ConfidencePct())
	assert.True(t, a.Verdict())
	assert.True(t, a.Tier().Equal(valueobject.RiskTierMedium))
	assert.Equal(t, reasons, a.Reasons())
	assert.Equal(t, model.PathHeuristic, a.Path())
	assert.False(t, a.AnalyzedAt().IsZero())
}

func TestAnalysis_CompleteRejectsOutOfRangeConfidence(t *testing.T) {
	a, err := model.NewAnalysis(model.AnalysisKindURL, "http://example.com")
	require.NoError(t, err)

	assert.Error(t, a.Complete(-1, false, valueobject.RiskTierLow, nil, model.PathHeuristic))
	assert.Error(t, a.Complete(100.5, false, valueobject.RiskTierLow, nil, model.PathHeuristic))
	assert.Error(t, a.Complete(50, false, valueobject.RiskTier{}, nil, model.PathHeuristic))
}

func TestAnalysis_CompleteEmitsCompletedEvent(t *testing.T) {
	a, err := model.NewAnalysis(model.AnalysisKindEmail, "someone@example.com")
	require.NoError(t, err)

	err = a.Complete(30, false, valueobject.RiskTierLow, nil, model.PathHeuristic)
	require.NoError(t, err)

	evts := a.ClearEvents()
	require.Len(t, evts, 1)

	completed, ok := evts[0].(event.AnalysisCompleted)
	require.True(t, ok)
	assert.Equal(t, a.ID(), completed.AggregateID())
	assert.Equal(t, "email", completed.Kind)
	assert.Equal(t, 30.0, completed.ConfidencePct)

	// Events are cleared after collection.
	assert.Empty(t, a.ClearEvents())
}

func TestAnalysis_HighTierEmitsHighRiskEvent(t *testing.T) {
	a, err := model.NewAnalysis(model.AnalysisKindEmail, "urgent@freedomain.com")
	require.NoError(t, err)

	reasons := []string{"Suspicious Sender Domain", "Urgent or Suspicious Subject Line"}
	err = a.Complete(80, true, valueobject.RiskTierHigh, reasons, model.PathHeuristic)
	require.NoError(t, err)

	evts := a.ClearEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, event.EventTypeAnalysisCompleted, evts[0].EventType())
	assert.Equal(t, event.EventTypeHighRiskDetected, evts[1].EventType())

	highRisk, ok := evts[1].(event.HighRiskDetected)
	require.True(t, ok)
	assert.Equal(t, reasons, highRisk.Reasons)
}
