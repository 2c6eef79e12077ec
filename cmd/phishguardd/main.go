package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/phishguard/phishguard/internal/application/usecase"
	"github.com/phishguard/phishguard/internal/domain/port"
	"github.com/phishguard/phishguard/internal/domain/service"
	"github.com/phishguard/phishguard/internal/infrastructure/config"
	"github.com/phishguard/phishguard/internal/infrastructure/mailparse"
	"github.com/phishguard/phishguard/internal/infrastructure/messaging"
	"github.com/phishguard/phishguard/internal/infrastructure/ml"
	grpcpresentation "github.com/phishguard/phishguard/internal/presentation/grpc"
	"github.com/phishguard/phishguard/internal/presentation/rest"
	"github.com/phishguard/phishguard/pkg/auth"
	"github.com/phishguard/phishguard/pkg/kafka"
	"github.com/phishguard/phishguard/pkg/observability"
)

// defaultClassifierThreshold is the minimum model confidence for a
// positive classifier verdict.
const defaultClassifierThreshold = 0.75

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Service: "phishguard",
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	logger.Info("starting phishguard",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "phishguard",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())

	// Scoring parameters, with env overrides applied on top of defaults.
	catalogCfg := applyCatalogOverrides(service.DefaultCatalogConfig(), cfg.Scoring)
	policy := applyPolicyOverrides(service.DefaultRiskPolicy(), cfg.Scoring)
	clfThreshold := cfg.Scoring.ClassifierThreshold
	if clfThreshold <= 0 {
		clfThreshold = defaultClassifierThreshold
	}

	// Wire domain services.
	urlExtractor := service.NewURLExtractor(catalogCfg, logger)
	emailExtractor := service.NewEmailExtractor(catalogCfg, urlExtractor, logger)
	heuristicScorer := service.NewHeuristicScorer()

	// Load the classifier model, degrading to heuristic-only on failure.
	classifier := loadClassifier(cfg.ModelPath, urlExtractor.FeatureNames(), logger)
	classifierScorer := service.NewClassifierScorer(classifier, clfThreshold, logger)

	// Wire infrastructure adapters.
	var producer *kafka.Producer
	if cfg.KafkaBroker != "" {
		producer = kafka.NewProducer(kafka.Config{Brokers: []string{cfg.KafkaBroker}})
		defer producer.Close()
		logger.Info("kafka producer configured", "broker", cfg.KafkaBroker, "topic", cfg.EventTopic)
	} else {
		logger.Info("no kafka broker configured, events will be logged only")
	}
	eventPublisher := messaging.NewKafkaPublisher(producer, cfg.EventTopic, logger)

	// Wire use cases.
	analyzeURLUC := usecase.NewAnalyzeURL(urlExtractor, heuristicScorer, classifierScorer, policy, eventPublisher, logger)
	analyzeEmailUC := usecase.NewAnalyzeEmail(emailExtractor, heuristicScorer, policy, eventPublisher, logger)

	// Optional JWT auth for the gRPC surface.
	jwtService, err := buildJWTService(cfg)
	if err != nil {
		logger.Error("failed to configure JWT auth", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewPhishGuardServiceHandler(analyzeURLUC, analyzeEmailUC, jwtService != nil, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger, jwtService)

	// HTTP server.
	analysisHandler := rest.NewAnalysisHandler(analyzeURLUC, analyzeEmailUC, mailparse.NewParser(logger), logger)
	healthHandler := rest.NewHealthHandler(logger, classifierScorer.Ready)

	httpMux := http.NewServeMux()
	analysisHandler.RegisterRoutes(httpMux)
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr: cfg.HTTPAddress(),
		Handler: rest.Chain(httpMux,
			rest.LoggingMiddleware(logger),
			rest.CORSMiddleware(cfg.CORSAllowOrigin),
			rest.BodyLimitMiddleware,
		),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("phishguard started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
		"model_loaded", classifierScorer.Ready(),
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down phishguard")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("phishguard stopped")
}

// loadClassifier loads the model artifact when a path is configured. A
// load failure or a feature schema mismatch is not fatal: the service
// runs heuristic-only.
func loadClassifier(path string, featureNames []string, logger *slog.Logger) port.Classifier {
	if path == "" {
		logger.Info("no model path configured, running heuristic-only")
		return nil
	}

	model, err := ml.LoadLogisticModel(path, logger)
	if err != nil {
		logger.Warn("failed to load classifier model, running heuristic-only", "error", err)
		return nil
	}

	if names := model.FeatureNames(); len(names) > 0 && !slices.Equal(names, featureNames) {
		logger.Warn("model feature schema does not match the indicator catalog, running heuristic-only",
			"model_features", names,
			"catalog_features", featureNames,
		)
		return nil
	}

	return model
}

func buildJWTService(cfg *config.Config) (*auth.JWTService, error) {
	if !cfg.AuthEnabled() {
		return nil, nil
	}

	jwtCfg := auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: "phishguard",
	}
	if cfg.JWTPublicKeyFile != "" {
		pem, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(pem)
		jwtCfg.Secret = ""
	}

	return auth.NewJWTService(jwtCfg)
}

func applyCatalogOverrides(base service.CatalogConfig, sc config.ScoringConfig) service.CatalogConfig {
	if sc.SuspiciousTLDs != nil {
		base.SuspiciousTLDs = sc.SuspiciousTLDs
	}
	if sc.URLKeywords != nil {
		base.URLKeywords = sc.URLKeywords
	}
	if sc.FreeSenderDomains != nil {
		base.SenderTerms = sc.FreeSenderDomains
	}
	if sc.UrgentSubjectWords != nil {
		base.UrgencyTerms = sc.UrgentSubjectWords
	}
	if sc.SensitiveWords != nil {
		base.SensitiveTerms = sc.SensitiveWords
	}
	if sc.SuspiciousPhrases != nil {
		base.PhrasingTerms = sc.SuspiciousPhrases
	}
	if sc.EmbeddedURLThreshold > 0 {
		base.EmbeddedURLThreshold = sc.EmbeddedURLThreshold
	}
	if sc.MaxHostLength > 0 {
		base.MaxHostLength = sc.MaxHostLength
	}
	if sc.MaxHostLabels > 0 {
		base.MaxHostLabels = sc.MaxHostLabels
	}
	return base
}

func applyPolicyOverrides(base service.RiskPolicy, sc config.ScoringConfig) service.RiskPolicy {
	if sc.VerdictThresholdPct > 0 {
		base.VerdictThresholdPct = sc.VerdictThresholdPct
	}
	if sc.TierHighPct > 0 {
		base.TierHighPct = sc.TierHighPct
	}
	if sc.TierMediumPct > 0 {
		base.TierMediumPct = sc.TierMediumPct
	}
	return base
}
