package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phishguard/phishguard/internal/domain/errs"
	"github.com/phishguard/phishguard/internal/domain/port"
)

// ClassifierScorer wraps the pre-trained classifier behind a
// confidence-threshold policy. The verdict is phishing only when the raw
// predicted class is positive AND the model's confidence meets the
// threshold; below it the verdict is forced negative, trading recall for
// fewer false positives.
type ClassifierScorer struct {
	clf       port.Classifier
	threshold float64
	logger    *slog.Logger
}

// NewClassifierScorer creates a ClassifierScorer. clf may be nil when no
// model was loaded at startup; Score then fails with ErrModelUnavailable
// for the lifetime of the process.
func NewClassifierScorer(clf port.Classifier, threshold float64, logger *slog.Logger) *ClassifierScorer {
	return &ClassifierScorer{
		clf:       clf,
		threshold: threshold,
		logger:    logger,
	}
}

// Ready reports whether a classifier is available.
func (s *ClassifierScorer) Ready() bool {
	return s.clf != nil
}

// Score classifies the feature vector. Confidence is the maximum class
// probability expressed as a percentage in [0, 100].
func (s *ClassifierScorer) Score(ctx context.Context, fv FeatureVector) (confidencePct float64, phishing bool, err error) {
	if s.clf == nil {
		return 0, false, errs.ErrModelUnavailable
	}

	class, err := s.clf.Predict(ctx, fv)
	if err != nil {
		return 0, false, fmt.Errorf("classifier predict: %w", err)
	}

	probs, err := s.clf.PredictProba(ctx, fv)
	if err != nil {
		return 0, false, fmt.Errorf("classifier predict probability: %w", err)
	}

	confidence := 0.0
	for _, p := range probs {
		if p > confidence {
			confidence = p
		}
	}

	phishing = class == 1 && confidence >= s.threshold
	if class == 1 && !phishing {
		s.logger.Debug("positive prediction suppressed below confidence threshold",
			slog.Float64("confidence", confidence),
			slog.Float64("threshold", s.threshold),
		)
	}

	return confidence * 100, phishing, nil
}
