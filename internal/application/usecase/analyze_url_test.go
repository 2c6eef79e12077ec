package usecase_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishguard/phishguard/internal/application/dto"
	"github.com/phishguard/phishguard/internal/application/usecase"
	"github.com/phishguard/phishguard/internal/domain/errs"
	"github.com/phishguard/phishguard/internal/domain/event"
	"github.com/phishguard/phishguard/internal/domain/service"
	"github.com/phishguard/phishguard/pkg/events"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockClassifier struct {
	class int
	probs []float64
	err   error
}

func (m *mockClassifier) Predict(_ context.Context, _ []float64) (int, error) {
	return m.class, m.err
}

func (m *mockClassifier) PredictProba(_ context.Context, _ []float64) ([]float64, error) {
	return m.probs, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newURLUseCase(clf *service.ClassifierScorer, publisher *mockEventPublisher) *usecase.AnalyzeURL {
	logger := testLogger()
	cfg := service.DefaultCatalogConfig()
	return usecase.NewAnalyzeURL(
		service.NewURLExtractor(cfg, logger),
		service.NewHeuristicScorer(),
		clf,
		service.DefaultRiskPolicy(),
		publisher,
		logger,
	)
}

// --- Tests ---

func TestAnalyzeURL_Execute(t *testing.T) {
	t.Run("heuristic path flags an IP host with keywords", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := newURLUseCase(nil, publisher)

		resp, err := uc.Execute(context.Background(), dto.AnalyzeURLRequest{URL: "http://192.168.1.1/secure-login"})
		require.NoError(t, err)

		assert.True(t, resp.IsPhishing)
		assert.Equal(t, 60.0, resp.Confidence)
		assert.Equal(t, "medium", resp.RiskLevel)
		assert.Equal(t, []string{
			"IP Address Used Instead of Domain",
			"Suspicious Keywords in URL",
		}, resp.Reasons)
		assert.Equal(t, "http://192.168.1.1/secure-login", resp.URL)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, event.EventTypeAnalysisCompleted, publisher.published[0].EventType())
	})

	t.Run("clean URL yields zero confidence and low tier", func(t *testing.T) {
		uc := newURLUseCase(nil, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.AnalyzeURLRequest{URL: "https://www.example.com/about"})
		require.NoError(t, err)

		assert.False(t, resp.IsPhishing)
		assert.Zero(t, resp.Confidence)
		assert.Equal(t, "low", resp.RiskLevel)
		assert.Empty(t, resp.Reasons)
	})

	t.Run("invalid URL propagates a validation error", func(t *testing.T) {
		uc := newURLUseCase(nil, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.AnalyzeURLRequest{URL: ""})
		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))

		_, err = uc.Execute(context.Background(), dto.AnalyzeURLRequest{URL: "not a url"})
		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("classifier path drives the verdict when a model is loaded", func(t *testing.T) {
		clf := service.NewClassifierScorer(&mockClassifier{class: 1, probs: []float64{0.1, 0.9}}, 0.75, testLogger())
		uc := newURLUseCase(clf, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.AnalyzeURLRequest{URL: "http://192.168.1.1/secure-login"})
		require.NoError(t, err)

		assert.True(t, resp.IsPhishing)
		assert.InDelta(t, 90.0, resp.Confidence, 1e-9)
		assert.Equal(t, "high", resp.RiskLevel)
		// Heuristic reasons are still reported alongside the model verdict.
		assert.NotEmpty(t, resp.Reasons)
	})

	t.Run("classifier failure falls back to heuristics", func(t *testing.T) {
		clf := service.NewClassifierScorer(&mockClassifier{err: assert.AnError}, 0.75, testLogger())
		uc := newURLUseCase(clf, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.AnalyzeURLRequest{URL: "http://192.168.1.1/secure-login"})
		require.NoError(t, err)

		assert.Equal(t, 60.0, resp.Confidence)
		assert.True(t, resp.IsPhishing)
	})

	t.Run("high tier publishes the high risk event", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := newURLUseCase(nil, publisher)

		// TLD + long host + subdomains + keyword: 0.3+0.2+0.2+0.2 = 90.
		resp, err := uc.Execute(context.Background(), dto.AnalyzeURLRequest{URL: "http://secure.account.banking-update.example.xyz/verify"})
		require.NoError(t, err)
		assert.Equal(t, "high", resp.RiskLevel)

		require.Len(t, publisher.published, 2)
		assert.Equal(t, event.EventTypeHighRiskDetected, publisher.published[1].EventType())
	})

	t.Run("publish failure does not fail the analysis", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(context.Context, ...events.DomainEvent) error { return assert.AnError },
		}
		uc := newURLUseCase(nil, publisher)

		resp, err := uc.Execute(context.Background(), dto.AnalyzeURLRequest{URL: "http://192.168.1.1/secure-login"})
		require.NoError(t, err)
		assert.True(t, resp.IsPhishing)
	})
}
