package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the phishguard service.
type Config struct {
	GRPCPort    string
	HTTPPort    string
	KafkaBroker string
	EventTopic  string
	Environment string
	LogLevel    string
	LogFormat   string

	// Classifier model artifact. Empty disables the classifier path and
	// the service scores heuristically only.
	ModelPath string

	// JWT settings for the gRPC surface. Auth is disabled when both are
	// empty.
	JWTSecret        string
	JWTPublicKeyFile string

	// CORSAllowOrigin is the allowed origin for browser callers.
	CORSAllowOrigin string

	Scoring ScoringConfig
}

// ScoringConfig carries the tunable thresholds and denylists of the
// scoring engine. Zero values fall back to the built-in defaults.
type ScoringConfig struct {
	VerdictThresholdPct  float64
	TierHighPct          float64
	TierMediumPct        float64
	ClassifierThreshold  float64
	EmbeddedURLThreshold float64
	MaxHostLength        int
	MaxHostLabels        int
	SuspiciousTLDs       []string
	URLKeywords          []string
	FreeSenderDomains    []string
	UrgentSubjectWords   []string
	SensitiveWords       []string
	SuspiciousPhrases    []string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is honored if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		GRPCPort:    getEnv("GRPC_PORT", "8091"),
		HTTPPort:    getEnv("HTTP_PORT", "9091"),
		KafkaBroker: getEnv("KAFKA_BROKER", ""),
		EventTopic:  getEnv("EVENT_TOPIC", "phishguard.analyses"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		ModelPath: getEnv("MODEL_PATH", ""),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTPublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),

		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),

		Scoring: ScoringConfig{
			VerdictThresholdPct:  getEnvFloat("VERDICT_THRESHOLD_PCT", 0),
			TierHighPct:          getEnvFloat("TIER_HIGH_PCT", 0),
			TierMediumPct:        getEnvFloat("TIER_MEDIUM_PCT", 0),
			ClassifierThreshold:  getEnvFloat("CLASSIFIER_THRESHOLD", 0),
			EmbeddedURLThreshold: getEnvFloat("EMBEDDED_URL_THRESHOLD", 0),
			MaxHostLength:        getEnvInt("MAX_HOST_LENGTH", 0),
			MaxHostLabels:        getEnvInt("MAX_HOST_LABELS", 0),
			SuspiciousTLDs:       getEnvList("SUSPICIOUS_TLDS"),
			URLKeywords:          getEnvList("URL_KEYWORDS"),
			FreeSenderDomains:    getEnvList("FREE_SENDER_DOMAINS"),
			UrgentSubjectWords:   getEnvList("URGENT_SUBJECT_WORDS"),
			SensitiveWords:       getEnvList("SENSITIVE_WORDS"),
			SuspiciousPhrases:    getEnvList("SUSPICIOUS_PHRASES"),
		},
	}
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// AuthEnabled reports whether the gRPC surface should enforce JWT auth.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" || c.JWTPublicKeyFile != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvList splits a comma-separated env var into trimmed entries. An
// unset or empty var returns nil so callers keep their defaults.
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
