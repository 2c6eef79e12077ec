package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishguard/phishguard/internal/domain/errs"
	"github.com/phishguard/phishguard/internal/domain/service"
)

func newURLExtractor() *service.URLExtractor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewURLExtractor(service.DefaultCatalogConfig(), logger)
}

func TestURLExtractor_EmptyInput(t *testing.T) {
	e := newURLExtractor()

	_, _, err := e.Extract("")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, _, err = e.Extract("   ")
	assert.True(t, errs.IsValidation(err))
}

func TestURLExtractor_MalformedInput(t *testing.T) {
	e := newURLExtractor()

	for _, raw := range []string{
		"not a url",
		"ftp://example.com/file",
		"http://",
		"example.com/no-scheme",
	} {
		_, _, err := e.Extract(raw)
		assert.True(t, errs.IsValidation(err), "expected validation error for %q", raw)
	}
}

func TestURLExtractor_CleanURL(t *testing.T) {
	e := newURLExtractor()

	triggers, vector, err := e.Extract("https://example.com/about")
	require.NoError(t, err)
	assert.Empty(t, triggers)
	assert.Equal(t, service.FeatureVector{0, 0, 0, 0, 0}, vector)
}

func TestURLExtractor_IPHostWithKeyword(t *testing.T) {
	e := newURLExtractor()

	triggers, vector, err := e.Extract("http://192.168.1.1/secure-login")
	require.NoError(t, err)

	// IP-literal host (0.4) + suspicious keyword (0.2).
	require.Len(t, triggers, 2)
	assert.Equal(t, service.IndicatorIPHost, triggers[0].Indicator)
	assert.Equal(t, 0.4, triggers[0].Weight)
	assert.Equal(t, service.IndicatorURLKeyword, triggers[1].Indicator)
	assert.Equal(t, 0.2, triggers[1].Weight)

	assert.Equal(t, service.FeatureVector{1, 0, 0, 0, 1}, vector)
}

func TestURLExtractor_SuspiciousTLDAndSubdomains(t *testing.T) {
	e := newURLExtractor()

	triggers, vector, err := e.Extract("http://a.b.c.example.xyz/path")
	require.NoError(t, err)

	// suspicious TLD (0.3) + more than 3 host labels (0.2).
	require.Len(t, triggers, 2)
	assert.Equal(t, service.IndicatorSuspiciousTLD, triggers[0].Indicator)
	assert.Equal(t, service.IndicatorManyLabels, triggers[1].Indicator)
	assert.Equal(t, service.FeatureVector{0, 1, 0, 1, 0}, vector)
}

func TestURLExtractor_LongHost(t *testing.T) {
	e := newURLExtractor()

	triggers, _, err := e.Extract("http://this-is-an-unreasonably-long-host-name.com/")
	require.NoError(t, err)

	require.Len(t, triggers, 1)
	assert.Equal(t, service.IndicatorLongHost, triggers[0].Indicator)
}

func TestURLExtractor_HostIsLowercasedAndStripped(t *testing.T) {
	e := newURLExtractor()

	parsed, err := e.Parse("http://EXAMPLE.com:8080/path?q=1")
	require.NoError(t, err)
	assert.Equal(t, "example.com", parsed.Host)
	assert.Equal(t, "/path", parsed.Path)
	assert.Equal(t, "q=1", parsed.RawQuery)
}

func TestURLExtractor_UnicodeHostNormalized(t *testing.T) {
	e := newURLExtractor()

	parsed, err := e.Parse("http://bücher.example/")
	require.NoError(t, err)
	assert.Equal(t, "xn--bcher-kva.example", parsed.Host)
}

func TestURLExtractor_Deterministic(t *testing.T) {
	e := newURLExtractor()

	t1, v1, err := e.Extract("http://192.168.1.1/secure-login")
	require.NoError(t, err)
	t2, v2, err := e.Extract("http://192.168.1.1/secure-login")
	require.NoError(t, err)

	assert.Equal(t, t1, t2)
	assert.Equal(t, v1, v2)
}

func TestURLExtractor_FeatureNames(t *testing.T) {
	e := newURLExtractor()

	assert.Equal(t, []string{
		service.IndicatorIPHost,
		service.IndicatorSuspiciousTLD,
		service.IndicatorLongHost,
		service.IndicatorManyLabels,
		service.IndicatorURLKeyword,
	}, e.FeatureNames())
}
