package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phishguard/phishguard/internal/application/dto"
	"github.com/phishguard/phishguard/internal/domain/model"
	"github.com/phishguard/phishguard/internal/domain/port"
	"github.com/phishguard/phishguard/internal/domain/service"
)

// AnalyzeURL is the use case for scoring a URL. It prefers the trained
// classifier when one is loaded and degrades to the heuristic scorer
// when the model is unavailable or fails mid-request.
type AnalyzeURL struct {
	extractor  *service.URLExtractor
	heuristic  *service.HeuristicScorer
	classifier *service.ClassifierScorer
	policy     service.RiskPolicy
	publisher  port.EventPublisher
	logger     *slog.Logger
}

// NewAnalyzeURL creates a new AnalyzeURL use case.
func NewAnalyzeURL(
	extractor *service.URLExtractor,
	heuristic *service.HeuristicScorer,
	classifier *service.ClassifierScorer,
	policy service.RiskPolicy,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *AnalyzeURL {
	return &AnalyzeURL{
		extractor:  extractor,
		heuristic:  heuristic,
		classifier: classifier,
		policy:     policy,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute extracts features, scores them, applies the risk policy and
// publishes the resulting domain events.
func (uc *AnalyzeURL) Execute(ctx context.Context, req dto.AnalyzeURLRequest) (dto.AnalysisResponse, error) {
	triggers, vector, err := uc.extractor.Extract(req.URL)
	if err != nil {
		return dto.AnalysisResponse{}, err
	}

	analysis, err := model.NewAnalysis(model.AnalysisKindURL, req.URL)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("create analysis: %w", err)
	}

	confidence, verdict, path := uc.score(ctx, triggers, vector)
	tier := uc.policy.Tier(confidence)

	if err := analysis.Complete(confidence, verdict, tier, service.Reasons(triggers), path); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("complete analysis: %w", err)
	}

	publishEvents(ctx, uc.publisher, analysis, uc.logger)

	return dto.FromModel(analysis), nil
}

// score runs the classifier path when a model is loaded, falling back to
// the heuristic path on any classifier failure. A model outage must
// never fail the request.
func (uc *AnalyzeURL) score(ctx context.Context, triggers []service.Trigger, vector service.FeatureVector) (float64, bool, model.ScoringPath) {
	if uc.classifier != nil && uc.classifier.Ready() {
		confidence, phishing, err := uc.classifier.Score(ctx, vector)
		if err == nil {
			return confidence, phishing, model.PathClassifier
		}
		uc.logger.Warn("classifier scoring failed, falling back to heuristics",
			slog.String("error", err.Error()),
		)
	}

	confidence := uc.heuristic.Score(triggers)
	return confidence, uc.policy.Verdict(confidence), model.PathHeuristic
}
