package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phishguard/phishguard/internal/application/dto"
	"github.com/phishguard/phishguard/internal/application/usecase"
	"github.com/phishguard/phishguard/internal/domain/errs"
	"github.com/phishguard/phishguard/internal/infrastructure/mailparse"
)

// AnalysisHandler exposes the analysis use cases over HTTP.
type AnalysisHandler struct {
	analyzeURL   *usecase.AnalyzeURL
	analyzeEmail *usecase.AnalyzeEmail
	parser       *mailparse.Parser
	logger       *slog.Logger
}

// NewAnalysisHandler creates a new HTTP handler for analysis requests.
func NewAnalysisHandler(
	analyzeURL *usecase.AnalyzeURL,
	analyzeEmail *usecase.AnalyzeEmail,
	parser *mailparse.Parser,
	logger *slog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzeURL:   analyzeURL,
		analyzeEmail: analyzeEmail,
		parser:       parser,
		logger:       logger,
	}
}

// RegisterRoutes registers analysis endpoints on the provided ServeMux.
func (h *AnalysisHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /analyze-url", h.AnalyzeURL)
	mux.HandleFunc("POST /analyze-email", h.AnalyzeEmail)
	mux.HandleFunc("POST /analyze-eml", h.AnalyzeEML)
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// AnalyzeURL handles URL analysis requests.
func (h *AnalysisHandler) AnalyzeURL(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	result, err := h.analyzeURL.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AnalyzeEmail handles email analysis requests with explicit fields.
func (h *AnalysisHandler) AnalyzeEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	result, err := h.analyzeEmail.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AnalyzeEML handles raw RFC 5322 message bodies, parsing the MIME
// envelope before running the email analysis path.
func (h *AnalysisHandler) AnalyzeEML(w http.ResponseWriter, r *http.Request) {
	record, err := h.parser.Parse(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unparseable email message"})
		return
	}

	result, err := h.analyzeEmail.Execute(r.Context(), dto.AnalyzeEmailRequest{
		Sender:  record.Sender,
		Subject: record.Subject,
		Content: record.Content,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeError maps domain errors to HTTP status codes. Validation
// failures are the caller's fault; everything else is internal.
func (h *AnalysisHandler) writeError(w http.ResponseWriter, err error) {
	if errs.IsValidation(err) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	h.logger.Error("analysis request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// writeDecodeError distinguishes an oversized body from a malformed one.
func writeDecodeError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
