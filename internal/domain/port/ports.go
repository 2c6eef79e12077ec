package port

import (
	"context"

	"github.com/phishguard/phishguard/pkg/events"
)

// Classifier is the port for the externally trained binary phishing
// classifier. The implementation is loaded once at process start and
// must be safe for concurrent reads; it is never mutated afterwards.
type Classifier interface {
	// Predict returns the predicted class for an aligned feature vector:
	// 1 for phishing, 0 for legitimate.
	Predict(ctx context.Context, features []float64) (int, error)

	// PredictProba returns the class probabilities [p0, p1] for an
	// aligned feature vector.
	PredictProba(ctx context.Context, features []float64) ([]float64, error)
}

// EventPublisher is the port for publishing domain events to the
// messaging infrastructure.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
