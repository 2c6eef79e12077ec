package service

import (
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"github.com/phishguard/phishguard/internal/domain/errs"
)

// URLExtractor parses a raw URL once and evaluates every URL indicator
// against it. It is stateless per call; the catalog is immutable after
// construction, so a single extractor is safe for concurrent use.
type URLExtractor struct {
	catalog []Indicator[ParsedURL]
	logger  *slog.Logger
}

// NewURLExtractor creates a URLExtractor with the catalog derived from cfg.
func NewURLExtractor(cfg CatalogConfig, logger *slog.Logger) *URLExtractor {
	return &URLExtractor{
		catalog: URLCatalog(cfg),
		logger:  logger,
	}
}

// Parse validates and parses a raw URL string. It fails with a
// ValidationError when the string is empty or is not a well-formed
// absolute http(s) URL with a host. Unicode hosts are normalized to
// their IDNA (punycode) form so indicator checks see the wire form.
func (e *URLExtractor) Parse(raw string) (ParsedURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedURL{}, errs.NewValidation("no URL provided")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ParsedURL{}, errs.NewValidation("invalid URL format")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ParsedURL{}, errs.NewValidation("invalid URL format")
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ParsedURL{}, errs.NewValidation("invalid URL format")
	}
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}

	return ParsedURL{
		Scheme:   u.Scheme,
		Host:     host,
		Path:     u.Path,
		RawQuery: u.RawQuery,
		Raw:      raw,
	}, nil
}

// Extract parses raw and evaluates the full URL catalog, returning the
// ordered triggers and the aligned feature vector. A parse failure
// short-circuits with the validation error and no partial triggers.
func (e *URLExtractor) Extract(raw string) ([]Trigger, FeatureVector, error) {
	parsed, err := e.Parse(raw)
	if err != nil {
		return nil, nil, err
	}

	triggers := make([]Trigger, 0, len(e.catalog))
	vector := make(FeatureVector, len(e.catalog))
	for i, ind := range e.catalog {
		if !evaluate(e.logger, ind, parsed) {
			continue
		}
		vector[i] = 1
		triggers = append(triggers, Trigger{
			Indicator: ind.Name,
			Reason:    ind.Reason,
			Weight:    ind.Weight,
		})
	}

	return triggers, vector, nil
}

// FeatureNames returns the classifier feature names in vector order.
func (e *URLExtractor) FeatureNames() []string {
	names := make([]string, len(e.catalog))
	for i, ind := range e.catalog {
		names[i] = ind.Name
	}
	return names
}
