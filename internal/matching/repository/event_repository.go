package repository

import (
	"context"
	"encoding/json"
	"time"

	"maestro_marketplace/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// search and task activity is streamed to kafka for the analytics pipeline

// EventPublisher marketplace activity event stream
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

// Event one analytics record
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type kafkaEventPublisher struct {
	writer *kafka.Writer
}

// NewKafkaEventPublisher create an EventPublisher
func NewKafkaEventPublisher(writer *kafka.Writer) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

// Publish best effort: analytics loss never fails the request
func (p *kafkaEventPublisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: data,
	}); err != nil {
		logger.Log.Warn("event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}
