package service

import (
	"log/slog"
	"regexp"

	"github.com/phishguard/phishguard/internal/domain/errs"
)

// urlLiteralPattern finds plain-text URL literals inside email content.
// Markup is not required; bare http(s) links count.
var urlLiteralPattern = regexp.MustCompile(`https?://[a-zA-Z0-9$-_@.&+!*(),%]+`)

// embeddedReasonPrefix namespaces reasons that came from a URL found in
// email content, distinguishing them from top-level email indicators.
const embeddedReasonPrefix = "Suspicious URL: "

// EmailExtractor evaluates the email indicator catalog against an
// EmailRecord, including recursive scoring of URLs embedded in the
// content. Safe for concurrent use.
type EmailExtractor struct {
	envelope     []Indicator[EmailRecord]
	content      []Indicator[EmailRecord]
	urls         *URLExtractor
	weightPerURL float64
	subThreshold float64
	logger       *slog.Logger
}

// NewEmailExtractor creates an EmailExtractor with catalogs derived from cfg.
func NewEmailExtractor(cfg CatalogConfig, urls *URLExtractor, logger *slog.Logger) *EmailExtractor {
	return &EmailExtractor{
		envelope:     emailEnvelopeCatalog(cfg),
		content:      emailContentCatalog(cfg),
		urls:         urls,
		weightPerURL: cfg.WeightEmbeddedURL,
		subThreshold: cfg.EmbeddedURLThreshold,
		logger:       logger,
	}
}

// Extract validates the record and returns the combined, order-preserving
// trigger list: envelope indicators first, then one weighted trigger per
// suspicious embedded URL, then content indicators. All of subject, sender
// and content are mandatory; a missing field fails with ValidationError.
func (e *EmailExtractor) Extract(rec EmailRecord) ([]Trigger, error) {
	if rec.Subject == "" {
		return nil, errs.MissingField("subject")
	}
	if rec.Sender == "" {
		return nil, errs.MissingField("sender")
	}
	if rec.Content == "" {
		return nil, errs.MissingField("content")
	}

	var triggers []Trigger
	for _, ind := range e.envelope {
		if evaluate(e.logger, ind, rec) {
			triggers = append(triggers, Trigger{
				Indicator: ind.Name,
				Reason:    ind.Reason,
				Weight:    ind.Weight,
			})
		}
	}

	triggers = append(triggers, e.embeddedURLTriggers(rec.Content)...)

	for _, ind := range e.content {
		if evaluate(e.logger, ind, rec) {
			triggers = append(triggers, Trigger{
				Indicator: ind.Name,
				Reason:    ind.Reason,
				Weight:    ind.Weight,
			})
		}
	}

	return triggers, nil
}

// embeddedURLTriggers scans content for URL literals and scores each one
// through the URL catalog. A URL whose raw weight sum exceeds the
// sub-threshold contributes the embedded-URL weight once; every reason the
// URL triggered is carried along, namespaced, with the weight attached to
// the first so the total stays one contribution per URL.
func (e *EmailExtractor) embeddedURLTriggers(content string) []Trigger {
	var out []Trigger
	for _, raw := range urlLiteralPattern.FindAllString(content, -1) {
		urlTriggers, _, err := e.urls.Extract(raw)
		if err != nil {
			// A non-parseable literal is not an analysis failure.
			e.logger.Debug("skipping unparseable embedded URL", slog.String("url", raw))
			continue
		}

		if rawSum(urlTriggers) <= e.subThreshold {
			continue
		}

		for i, ut := range urlTriggers {
			weight := 0.0
			if i == 0 {
				weight = e.weightPerURL
			}
			out = append(out, Trigger{
				Indicator: IndicatorEmbeddedURL,
				Reason:    embeddedReasonPrefix + ut.Reason,
				Weight:    weight,
			})
		}
	}
	return out
}
