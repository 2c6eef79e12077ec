package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishguard/phishguard/internal/application/dto"
	"github.com/phishguard/phishguard/internal/application/usecase"
	"github.com/phishguard/phishguard/internal/domain/errs"
	"github.com/phishguard/phishguard/internal/domain/event"
	"github.com/phishguard/phishguard/internal/domain/service"
)

func newEmailUseCase(publisher *mockEventPublisher) *usecase.AnalyzeEmail {
	logger := testLogger()
	cfg := service.DefaultCatalogConfig()
	urls := service.NewURLExtractor(cfg, logger)
	return usecase.NewAnalyzeEmail(
		service.NewEmailExtractor(cfg, urls, logger),
		service.NewHeuristicScorer(),
		service.DefaultRiskPolicy(),
		publisher,
		logger,
	)
}

func TestAnalyzeEmail_Execute(t *testing.T) {
	t.Run("benign email scores zero", func(t *testing.T) {
		uc := newEmailUseCase(&mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.AnalyzeEmailRequest{
			Sender:  "alice@example.com",
			Subject: "Lunch on Friday?",
			Content: "Does noon still work for you?",
		})
		require.NoError(t, err)

		assert.False(t, resp.IsPhishing)
		assert.Zero(t, resp.Confidence)
		assert.Equal(t, "low", resp.RiskLevel)
		assert.Empty(t, resp.Reasons)
		assert.Empty(t, resp.URL)
	})

	t.Run("phishing email is flagged high risk", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := newEmailUseCase(publisher)

		resp, err := uc.Execute(context.Background(), dto.AnalyzeEmailRequest{
			Sender:  "support@freedomain.com",
			Subject: "Urgent: action required",
			Content: "Kindly confirm your password to avoid suspension.",
		})
		require.NoError(t, err)

		// sender 0.3 + subject 0.3 + sensitive 0.2 + phrasing 0.1 = 90.
		assert.True(t, resp.IsPhishing)
		assert.Equal(t, 90.0, resp.Confidence)
		assert.Equal(t, "high", resp.RiskLevel)
		assert.Equal(t, []string{
			"Suspicious Sender Domain",
			"Urgent or Suspicious Subject Line",
			"Contains Sensitive Words",
			"Suspicious Language Patterns",
		}, resp.Reasons)

		require.Len(t, publisher.published, 2)
		assert.Equal(t, event.EventTypeHighRiskDetected, publisher.published[1].EventType())
	})

	t.Run("missing fields are reported in order", func(t *testing.T) {
		uc := newEmailUseCase(&mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.AnalyzeEmailRequest{
			Sender:  "alice@example.com",
			Content: "hello",
		})
		require.Error(t, err)

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "subject", vErr.Field)
	})

	t.Run("embedded suspicious URL contributes once", func(t *testing.T) {
		uc := newEmailUseCase(&mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.AnalyzeEmailRequest{
			Sender:  "alice@example.com",
			Subject: "Receipt",
			Content: "See http://192.168.1.1/secure-login for details.",
		})
		require.NoError(t, err)

		// One embedded URL above the sub-threshold adds exactly 0.2.
		assert.Equal(t, 20.0, resp.Confidence)
		assert.Equal(t, []string{
			"Suspicious URL: IP Address Used Instead of Domain",
			"Suspicious URL: Suspicious Keywords in URL",
		}, resp.Reasons)
	})
}
