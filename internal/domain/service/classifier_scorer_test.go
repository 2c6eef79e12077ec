package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishguard/phishguard/internal/domain/errs"
	"github.com/phishguard/phishguard/internal/domain/service"
)

// fakeClassifier returns canned predictions.
type fakeClassifier struct {
	class int
	probs []float64
	err   error
}

func (f *fakeClassifier) Predict(_ context.Context, _ []float64) (int, error) {
	return f.class, f.err
}

func (f *fakeClassifier) PredictProba(_ context.Context, _ []float64) ([]float64, error) {
	return f.probs, f.err
}

func newClassifierScorer(clf *fakeClassifier) *service.ClassifierScorer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if clf == nil {
		return service.NewClassifierScorer(nil, 0.75, logger)
	}
	return service.NewClassifierScorer(clf, 0.75, logger)
}

func TestClassifierScorer_Unavailable(t *testing.T) {
	scorer := newClassifierScorer(nil)

	assert.False(t, scorer.Ready())

	_, _, err := scorer.Score(context.Background(), service.FeatureVector{1, 0, 0, 0, 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrModelUnavailable)
}

func TestClassifierScorer_PositiveAboveThreshold(t *testing.T) {
	scorer := newClassifierScorer(&fakeClassifier{class: 1, probs: []float64{0.1, 0.9}})

	pct, phishing, err := scorer.Score(context.Background(), service.FeatureVector{1, 0, 0, 0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 90.0, pct, 1e-9)
	assert.True(t, phishing)
}

func TestClassifierScorer_PositiveAtThreshold(t *testing.T) {
	scorer := newClassifierScorer(&fakeClassifier{class: 1, probs: []float64{0.25, 0.75}})

	_, phishing, err := scorer.Score(context.Background(), service.FeatureVector{1, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.True(t, phishing)
}

func TestClassifierScorer_PositiveBelowThresholdSuppressed(t *testing.T) {
	scorer := newClassifierScorer(&fakeClassifier{class: 1, probs: []float64{0.26, 0.74}})

	pct, phishing, err := scorer.Score(context.Background(), service.FeatureVector{1, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 74.0, pct, 1e-9)
	assert.False(t, phishing, "positive verdict below threshold must be forced negative")
}

func TestClassifierScorer_NegativeClassNeverPhishing(t *testing.T) {
	scorer := newClassifierScorer(&fakeClassifier{class: 0, probs: []float64{0.95, 0.05}})

	pct, phishing, err := scorer.Score(context.Background(), service.FeatureVector{0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 95.0, pct, 1e-9)
	assert.False(t, phishing)
}

func TestClassifierScorer_PredictError(t *testing.T) {
	scorer := newClassifierScorer(&fakeClassifier{err: errors.New("model file corrupt")})

	_, _, err := scorer.Score(context.Background(), service.FeatureVector{0, 0, 0, 0, 0})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrModelUnavailable)
}
