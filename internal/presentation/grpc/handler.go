package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/phishguard/phishguard/internal/application/dto"
	"github.com/phishguard/phishguard/internal/application/usecase"
	"github.com/phishguard/phishguard/internal/domain/errs"
	"github.com/phishguard/phishguard/pkg/auth"
)

// requireRole checks that the caller has at least one of the given
// roles. Skipped entirely when the server runs without authentication.
func (h *PhishGuardServiceHandler) requireRole(ctx context.Context, roles ...string) error {
	if !h.authEnabled {
		return nil
	}
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Compile-time assertion that PhishGuardServiceHandler implements PhishGuardServiceServer.
var _ PhishGuardServiceServer = (*PhishGuardServiceHandler)(nil)

// PhishGuardServiceHandler implements the gRPC PhishGuardServiceServer interface.
type PhishGuardServiceHandler struct {
	UnimplementedPhishGuardServiceServer
	analyzeURL   *usecase.AnalyzeURL
	analyzeEmail *usecase.AnalyzeEmail
	authEnabled  bool
	logger       *slog.Logger
}

// NewPhishGuardServiceHandler creates a new gRPC handler.
func NewPhishGuardServiceHandler(
	analyzeURL *usecase.AnalyzeURL,
	analyzeEmail *usecase.AnalyzeEmail,
	authEnabled bool,
	logger *slog.Logger,
) *PhishGuardServiceHandler {
	return &PhishGuardServiceHandler{
		analyzeURL:   analyzeURL,
		analyzeEmail: analyzeEmail,
		authEnabled:  authEnabled,
		logger:       logger,
	}
}

// Proto-aligned request/response message types.

// ScoreURLRequest represents the proto ScoreURLRequest message.
type ScoreURLRequest struct {
	URL string `json:"url"`
}

// ScoreEmailRequest represents the proto ScoreEmailRequest message.
type ScoreEmailRequest struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// ScoreResponse represents the proto ScoreResponse message.
type ScoreResponse struct {
	IsPhishing bool     `json:"is_phishing"`
	Confidence float64  `json:"confidence"`
	RiskLevel  string   `json:"risk_level"`
	Reasons    []string `json:"reasons"`
}

// ScoreURL handles a URL scoring request.
func (h *PhishGuardServiceHandler) ScoreURL(ctx context.Context, req *ScoreURLRequest) (*ScoreResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleScanner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.analyzeURL.Execute(ctx, dto.AnalyzeURLRequest{URL: req.URL})
	if err != nil {
		return nil, h.mapError(err, "url scoring failed")
	}
	return toScoreResponse(result), nil
}

// ScoreEmail handles an email scoring request.
func (h *PhishGuardServiceHandler) ScoreEmail(ctx context.Context, req *ScoreEmailRequest) (*ScoreResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleScanner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.analyzeEmail.Execute(ctx, dto.AnalyzeEmailRequest{
		Sender:  req.Sender,
		Subject: req.Subject,
		Content: req.Content,
	})
	if err != nil {
		return nil, h.mapError(err, "email scoring failed")
	}
	return toScoreResponse(result), nil
}

func (h *PhishGuardServiceHandler) mapError(err error, msg string) error {
	if errs.IsValidation(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	h.logger.Error(msg, slog.String("error", err.Error()))
	return status.Error(codes.Internal, "internal error")
}

func toScoreResponse(result dto.AnalysisResponse) *ScoreResponse {
	return &ScoreResponse{
		IsPhishing: result.IsPhishing,
		Confidence: result.Confidence,
		RiskLevel:  result.RiskLevel,
		Reasons:    result.Reasons,
	}
}
