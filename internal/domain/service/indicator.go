package service

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/phishguard/phishguard/internal/domain/errs"
)

// ParsedURL is the parse-once representation of a URL under analysis.
// It is derived once per analysis and never mutated.
type ParsedURL struct {
	Scheme   string
	Host     string // hostname only, lowercased, IDNA-normalized, no port
	Path     string
	RawQuery string
	Raw      string
}

// EmailRecord carries the untrusted fields of an email under analysis.
type EmailRecord struct {
	Sender  string
	Subject string
	Content string
}

// Trigger records one indicator firing for a specific analysis.
type Trigger struct {
	Indicator string
	Reason    string
	Weight    float64
}

// FeatureVector is the ordered numeric encoding of indicator outcomes,
// one slot per URL indicator in catalog order. The order is a contract
// with the trained classifier and must not change once a model has been
// trained against it.
type FeatureVector []float64

// Indicator is a single named heuristic test contributing a fixed weight
// and a fixed human-readable reason when triggered. Predicates must treat
// malformed input as not triggered rather than failing the analysis.
type Indicator[S any] struct {
	Name   string
	Reason string
	Weight float64
	Test   func(S) bool
}

// CatalogConfig holds the denylists, thresholds and weights that
// parameterize the indicator catalogs. It is built once at startup and
// treated as immutable afterwards.
type CatalogConfig struct {
	SuspiciousTLDs []string
	URLKeywords    []string
	MaxHostLength  int
	MaxHostLabels  int

	SenderTerms    []string
	UrgencyTerms   []string
	SensitiveTerms []string
	PhrasingTerms  []string

	// EmbeddedURLThreshold is the raw heuristic sum above which a URL
	// found inside email content counts as suspicious.
	EmbeddedURLThreshold float64

	WeightIPHost        float64
	WeightSuspiciousTLD float64
	WeightLongHost      float64
	WeightManyLabels    float64
	WeightURLKeyword    float64

	WeightSender        float64
	WeightUrgentSubject float64
	WeightEmbeddedURL   float64
	WeightSensitive     float64
	WeightPhrasing      float64
}

// DefaultCatalogConfig returns the stock catalog parameters.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		SuspiciousTLDs: []string{".xyz", ".top", ".work", ".click", ".loan"},
		URLKeywords:    []string{"secure", "account", "banking", "login", "verify"},
		MaxHostLength:  30,
		MaxHostLabels:  3,

		SenderTerms:    []string{"free", "temp", "disposable"},
		UrgencyTerms:   []string{"urgent", "immediate", "action required", "account suspended", "verify"},
		SensitiveTerms: []string{"password", "credit card", "ssn", "social security", "bank account"},
		PhrasingTerms:  []string{"kindly", "dear sir", "dear madam", "valued customer"},

		EmbeddedURLThreshold: 0.5,

		WeightIPHost:        0.4,
		WeightSuspiciousTLD: 0.3,
		WeightLongHost:      0.2,
		WeightManyLabels:    0.2,
		WeightURLKeyword:    0.2,

		WeightSender:        0.3,
		WeightUrgentSubject: 0.3,
		WeightEmbeddedURL:   0.2,
		WeightSensitive:     0.2,
		WeightPhrasing:      0.1,
	}
}

// Indicator names. These double as feature names for the classifier
// artifact and as signal identifiers in published events.
const (
	IndicatorIPHost        = "ip_host"
	IndicatorSuspiciousTLD = "suspicious_tld"
	IndicatorLongHost      = "long_host"
	IndicatorManyLabels    = "many_subdomains"
	IndicatorURLKeyword    = "url_keyword"

	IndicatorSender        = "suspicious_sender"
	IndicatorUrgentSubject = "urgent_subject"
	IndicatorEmbeddedURL   = "embedded_suspicious_url"
	IndicatorSensitive     = "sensitive_words"
	IndicatorPhrasing      = "suspicious_phrasing"
)

var ipHostPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// URLCatalog builds the ordered URL indicator catalog. The order defines
// both the reasons ordering and the FeatureVector layout.
func URLCatalog(cfg CatalogConfig) []Indicator[ParsedURL] {
	return []Indicator[ParsedURL]{
		{
			Name:   IndicatorIPHost,
			Reason: "IP Address Used Instead of Domain",
			Weight: cfg.WeightIPHost,
			Test: func(u ParsedURL) bool {
				return ipHostPattern.MatchString(u.Host)
			},
		},
		{
			Name:   IndicatorSuspiciousTLD,
			Reason: "Suspicious Top-Level Domain",
			Weight: cfg.WeightSuspiciousTLD,
			Test: func(u ParsedURL) bool {
				return containsAny(u.Host, cfg.SuspiciousTLDs)
			},
		},
		{
			Name:   IndicatorLongHost,
			Reason: "Unusually Long Domain Name",
			Weight: cfg.WeightLongHost,
			Test: func(u ParsedURL) bool {
				return len(u.Host) > cfg.MaxHostLength
			},
		},
		{
			Name:   IndicatorManyLabels,
			Reason: "Multiple Subdomains",
			Weight: cfg.WeightManyLabels,
			Test: func(u ParsedURL) bool {
				// The octets of an IP literal are not subdomains.
				if u.Host == "" || ipHostPattern.MatchString(u.Host) {
					return false
				}
				return len(strings.Split(u.Host, ".")) > cfg.MaxHostLabels
			},
		},
		{
			Name:   IndicatorURLKeyword,
			Reason: "Suspicious Keywords in URL",
			Weight: cfg.WeightURLKeyword,
			Test: func(u ParsedURL) bool {
				return containsAny(u.Raw, cfg.URLKeywords)
			},
		},
	}
}

// emailEnvelopeCatalog builds the sender and subject indicators. They run
// before embedded URL checks so reasons keep their canonical order.
func emailEnvelopeCatalog(cfg CatalogConfig) []Indicator[EmailRecord] {
	return []Indicator[EmailRecord]{
		{
			Name:   IndicatorSender,
			Reason: "Suspicious Sender Domain",
			Weight: cfg.WeightSender,
			Test: func(r EmailRecord) bool {
				return containsAny(r.Sender, cfg.SenderTerms)
			},
		},
		{
			Name:   IndicatorUrgentSubject,
			Reason: "Urgent or Suspicious Subject Line",
			Weight: cfg.WeightUrgentSubject,
			Test: func(r EmailRecord) bool {
				return containsAny(r.Subject, cfg.UrgencyTerms)
			},
		},
	}
}

// emailContentCatalog builds the content indicators that run after the
// embedded URL checks.
func emailContentCatalog(cfg CatalogConfig) []Indicator[EmailRecord] {
	return []Indicator[EmailRecord]{
		{
			Name:   IndicatorSensitive,
			Reason: "Contains Sensitive Words",
			Weight: cfg.WeightSensitive,
			Test: func(r EmailRecord) bool {
				return containsAny(r.Content, cfg.SensitiveTerms)
			},
		},
		{
			Name:   IndicatorPhrasing,
			Reason: "Suspicious Language Patterns",
			Weight: cfg.WeightPhrasing,
			Test: func(r EmailRecord) bool {
				return containsAny(r.Content, cfg.PhrasingTerms)
			},
		},
	}
}

// evaluate runs one indicator against a subject. An internal failure in
// the predicate is contained: the indicator counts as not triggered, the
// failure is logged, and the analysis continues.
func evaluate[S any](logger *slog.Logger, ind Indicator[S], subject S) (fired bool) {
	defer func() {
		if r := recover(); r != nil {
			fired = false
			evalErr := &errs.IndicatorEvaluationError{Indicator: ind.Name, Cause: r}
			logger.Warn("indicator evaluation failed, treating as not triggered",
				slog.String("indicator", ind.Name),
				slog.String("error", evalErr.Error()),
			)
		}
	}()

	if ind.Test == nil {
		return false
	}
	return ind.Test(subject)
}

// containsAny reports whether the lowercased text contains any of the
// terms. Terms are matched as case-insensitive substrings.
func containsAny(text string, terms []string) bool {
	lowered := strings.ToLower(text)
	for _, term := range terms {
		if term != "" && strings.Contains(lowered, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
