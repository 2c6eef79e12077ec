package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phishguard/phishguard/pkg/events"
	"github.com/phishguard/phishguard/pkg/kafka"
)

// producer is the subset of the kafka producer the publisher needs.
type producer interface {
	Publish(ctx context.Context, topic string, messages ...kafka.Message) error
}

// KafkaPublisher implements port.EventPublisher on top of the shared
// kafka producer. With a nil producer it runs in log-only mode, which
// keeps local development working without a broker.
type KafkaPublisher struct {
	producer producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates an event publisher for the given topic. Pass
// a nil producer to log events instead of sending them.
func NewKafkaPublisher(producer *kafka.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	p := &KafkaPublisher{topic: topic, logger: logger}
	if producer != nil {
		p.producer = producer
	}
	return p
}

// Publish serializes domain events to JSON and sends them to Kafka,
// keyed by aggregate ID with the event type carried in a header.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.Info("publishing event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.String("topic", p.topic),
		)

		if p.producer == nil {
			p.logger.Debug("no broker configured, event logged only",
				slog.String("payload", string(payload)),
			)
			continue
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}
	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}
