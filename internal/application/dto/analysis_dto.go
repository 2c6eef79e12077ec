package dto

import (
	"github.com/phishguard/phishguard/internal/domain/model"
)

// AnalyzeURLRequest is the input DTO for the AnalyzeURL use case.
type AnalyzeURLRequest struct {
	URL string `json:"url"`
}

// AnalyzeEmailRequest is the input DTO for the AnalyzeEmail use case.
type AnalyzeEmailRequest struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// AnalysisResponse is the output DTO returned for both analysis kinds.
// Field names follow the public API contract consumed by the browser
// extension, hence the camelCase tags.
type AnalysisResponse struct {
	IsPhishing bool     `json:"isPhishing"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
	RiskLevel  string   `json:"riskLevel"`
	URL        string   `json:"url,omitempty"`
}

// FromModel maps a completed analysis to the response DTO.
func FromModel(a *model.Analysis) AnalysisResponse {
	reasons := a.Reasons()
	if reasons == nil {
		reasons = []string{}
	}

	resp := AnalysisResponse{
		IsPhishing: a.Verdict(),
		Confidence: a.ConfidencePct(),
		Reasons:    reasons,
		RiskLevel:  a.Tier().String(),
	}
	if a.Kind() == model.AnalysisKindURL {
		resp.URL = a.Subject()
	}
	return resp
}
