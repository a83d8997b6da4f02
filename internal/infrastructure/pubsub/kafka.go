package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// KafkaLifecyclePublisher appends lifecycle events to a Kafka topic, keyed by
// aggregate ID so one ticket's events stay in order on one partition.
type KafkaLifecyclePublisher struct {
	writer *kafka.Writer
	logger logger.Interface
}

func NewKafkaLifecyclePublisher(brokers []string, topic string, logger logger.Interface) *KafkaLifecyclePublisher {
	return &KafkaLifecyclePublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		logger: logger,
	}
}

func (p *KafkaLifecyclePublisher) Name() string { return "kafka" }

func (p *KafkaLifecyclePublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	msg, err := kafkaMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Errorw("failed to write lifecycle event to kafka",
			"topic", p.writer.Topic,
			"event_type", event.GetEventType(),
			"error", err,
		)
		return fmt.Errorf("failed to write lifecycle event: %w", err)
	}
	return nil
}

func (p *KafkaLifecyclePublisher) Close() error {
	return p.writer.Close()
}

func kafkaMessage(event events.DomainEvent) (kafka.Message, error) {
	msg, err := NewLifecycleMessage(event, "")
	if err != nil {
		return kafka.Message{}, err
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal lifecycle message: %w", err)
	}
	return kafka.Message{
		Key:   []byte(msg.AggregateID),
		Value: value,
		Time:  msg.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(msg.EventType)},
		},
	}, nil
}
