package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/shared/goroutine"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// LifecycleMessage is the wire form of a ticket, dev task or sprint event.
// Payload holds the full event as JSON.
type LifecycleMessage struct {
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	InstanceID  string          `json:"instance_id,omitempty"` // Source instance ID to avoid self-delivery
	Payload     json.RawMessage `json:"payload"`
}

// NewLifecycleMessage encodes event for publication.
func NewLifecycleMessage(event events.DomainEvent, instanceID string) (LifecycleMessage, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return LifecycleMessage{}, fmt.Errorf("failed to marshal %s event: %w", event.GetEventType(), err)
	}
	return LifecycleMessage{
		EventType:   event.GetEventType(),
		AggregateID: event.GetAggregateID(),
		OccurredAt:  event.GetOccurredAt(),
		InstanceID:  instanceID,
		Payload:     payload,
	}, nil
}

// LifecycleHandler receives messages published by other instances.
type LifecycleHandler func(msg LifecycleMessage)

// RedisLifecycleBus fans lifecycle events out over a Redis Pub/Sub channel so
// every API instance and external listener sees them.
type RedisLifecycleBus struct {
	client     *redis.Client
	channel    string
	logger     logger.Interface
	instanceID string
}

func NewRedisLifecycleBus(client *redis.Client, channel string, logger logger.Interface) *RedisLifecycleBus {
	return &RedisLifecycleBus{
		client:     client,
		channel:    channel,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

func (b *RedisLifecycleBus) Name() string { return "redis" }

func (b *RedisLifecycleBus) InstanceID() string { return b.instanceID }

// Publish sends event to the lifecycle channel.
func (b *RedisLifecycleBus) Publish(ctx context.Context, event events.DomainEvent) error {
	msg, err := NewLifecycleMessage(event, b.instanceID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal lifecycle message: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish lifecycle event",
			"event_type", msg.EventType,
			"aggregate_id", msg.AggregateID,
			"error", err,
		)
		return fmt.Errorf("failed to publish lifecycle event: %w", err)
	}

	b.logger.Debugw("lifecycle event published to Redis",
		"event_type", msg.EventType,
		"aggregate_id", msg.AggregateID,
	)
	return nil
}

// Subscribe blocks until ctx is done, reconnecting with exponential backoff.
// Messages published by this instance are filtered out.
func (b *RedisLifecycleBus) Subscribe(ctx context.Context, handler LifecycleHandler) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, func(payload string) {
			var msg LifecycleMessage
			if err := json.Unmarshal([]byte(payload), &msg); err != nil {
				b.logger.Warnw("failed to unmarshal lifecycle message",
					"payload", payload,
					"error", err,
				)
				return
			}
			if msg.InstanceID == b.instanceID {
				return
			}
			handler(msg)
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("lifecycle subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisLifecycleBus) subscribe(ctx context.Context, handler func(payload string)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}

	b.logger.Infow("subscribed to lifecycle channel", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("lifecycle subscriber stopped",
				"channel", b.channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("lifecycle channel closed", "channel", b.channel)
				return nil
			}

			goroutine.SafeGo(b.logger, "lifecycle-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
