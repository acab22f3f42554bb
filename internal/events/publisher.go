package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher emits score events for downstream consumers.
type EventPublisher interface {
	PublishScoreRecorded(ctx context.Context, event *ScoreRecordedEvent) error
	Close() error
}

// KafkaEventPublisher implements EventPublisher using Watermill with Kafka.
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher.
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisherConfig := kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

func (p *KafkaEventPublisher) PublishScoreRecorded(ctx context.Context, event *ScoreRecordedEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal score event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", "score.recorded")
	msg.Metadata.Set("quiz_id", fmt.Sprint(event.QuizID))
	msg.Metadata.Set("occurred_at", event.OccurredAt.Format("2006-01-02T15:04:05Z07:00"))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish score event",
			"event_id", event.ID,
			"quiz_id", event.QuizID,
			"error", err)
		return fmt.Errorf("failed to publish score event: %w", err)
	}

	p.logger.Info("Published score event",
		"event_id", event.ID,
		"quiz_id", event.QuizID,
		"topic", p.topicName)

	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher collects events in memory. Used in tests and in
// deployments that run without a broker.
type MockEventPublisher struct {
	Events []ScoreRecordedEvent
	Logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]ScoreRecordedEvent, 0),
		Logger: logger,
	}
}

func (m *MockEventPublisher) PublishScoreRecorded(ctx context.Context, event *ScoreRecordedEvent) error {
	m.Events = append(m.Events, *event)
	m.Logger.Info("Mock: Published score event",
		"event_id", event.ID,
		"quiz_id", event.QuizID)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}
