package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
)

// modelArtifact is the on-disk JSON representation of a trained binary
// logistic regression model. FeatureNames must match the URL indicator
// catalog order the model was trained against.
type modelArtifact struct {
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
}

// LogisticModel implements port.Classifier with a binary logistic
// regression loaded from a JSON artifact. Class 1 is phishing.
type LogisticModel struct {
	artifact modelArtifact
	logger   *slog.Logger
}

// LoadLogisticModel reads and validates a model artifact from disk.
func LoadLogisticModel(path string, logger *slog.Logger) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var art modelArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if len(art.Weights) == 0 {
		return nil, fmt.Errorf("model artifact has no weights")
	}
	if len(art.FeatureNames) > 0 && len(art.FeatureNames) != len(art.Weights) {
		return nil, fmt.Errorf("model artifact feature/weight mismatch: %d names, %d weights",
			len(art.FeatureNames), len(art.Weights))
	}

	logger.Info("classifier model loaded",
		slog.String("path", path),
		slog.Int("features", len(art.Weights)),
	)

	return &LogisticModel{artifact: art, logger: logger}, nil
}

// FeatureNames returns the feature ordering the model was trained with,
// or nil when the artifact did not record it.
func (m *LogisticModel) FeatureNames() []string {
	return m.artifact.FeatureNames
}

// Predict returns the predicted class for the feature vector: 1 for
// phishing, 0 for legitimate.
func (m *LogisticModel) Predict(ctx context.Context, features []float64) (int, error) {
	p, err := m.probability(features)
	if err != nil {
		return 0, err
	}
	if p >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

// PredictProba returns the class probability distribution as
// [P(legitimate), P(phishing)].
func (m *LogisticModel) PredictProba(ctx context.Context, features []float64) ([]float64, error) {
	p, err := m.probability(features)
	if err != nil {
		return nil, err
	}
	return []float64{1 - p, p}, nil
}

func (m *LogisticModel) probability(features []float64) (float64, error) {
	if len(features) != len(m.artifact.Weights) {
		return 0, fmt.Errorf("feature vector length %d does not match model dimension %d",
			len(features), len(m.artifact.Weights))
	}

	z := m.artifact.Bias
	for i, w := range m.artifact.Weights {
		z += w * features[i]
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
