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

// AnalyzeEmail is the use case for scoring an email record. Email
// analysis is purely heuristic: the trained classifier only covers URL
// features.
type AnalyzeEmail struct {
	extractor *service.EmailExtractor
	heuristic *service.HeuristicScorer
	policy    service.RiskPolicy
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewAnalyzeEmail creates a new AnalyzeEmail use case.
func NewAnalyzeEmail(
	extractor *service.EmailExtractor,
	heuristic *service.HeuristicScorer,
	policy service.RiskPolicy,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *AnalyzeEmail {
	return &AnalyzeEmail{
		extractor: extractor,
		heuristic: heuristic,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute validates the record, runs the email indicator catalogs,
// applies the risk policy and publishes the resulting domain events.
func (uc *AnalyzeEmail) Execute(ctx context.Context, req dto.AnalyzeEmailRequest) (dto.AnalysisResponse, error) {
	record := service.EmailRecord{
		Sender:  req.Sender,
		Subject: req.Subject,
		Content: req.Content,
	}

	triggers, err := uc.extractor.Extract(record)
	if err != nil {
		return dto.AnalysisResponse{}, err
	}

	analysis, err := model.NewAnalysis(model.AnalysisKindEmail, req.Sender)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("create analysis: %w", err)
	}

	confidence := uc.heuristic.Score(triggers)
	verdict := uc.policy.Verdict(confidence)
	tier := uc.policy.Tier(confidence)

	if err := analysis.Complete(confidence, verdict, tier, service.Reasons(triggers), model.PathHeuristic); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("complete analysis: %w", err)
	}

	publishEvents(ctx, uc.publisher, analysis, uc.logger)

	return dto.FromModel(analysis), nil
}

// publishEvents drains and publishes the aggregate's recorded events.
// The analysis result is already final at this point, so a publish
// failure is logged and does not fail the request.
func publishEvents(ctx context.Context, publisher port.EventPublisher, analysis *model.Analysis, logger *slog.Logger) {
	evts := analysis.ClearEvents()
	if len(evts) == 0 || publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		logger.Error("publishing analysis events failed",
			slog.String("analysis_id", analysis.ID().String()),
			slog.String("error", err.Error()),
		)
	}
}
