package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/infrastructure/auth"
	"github.com/systech-labs/deskflow/internal/infrastructure/config"
	"github.com/systech-labs/deskflow/internal/infrastructure/email"
	"github.com/systech-labs/deskflow/internal/infrastructure/permission"
	"github.com/systech-labs/deskflow/internal/infrastructure/pubsub"
	"github.com/systech-labs/deskflow/internal/infrastructure/ratelimit"
	"github.com/systech-labs/deskflow/internal/interfaces/http/middleware"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/goroutine"
	"github.com/systech-labs/deskflow/internal/shared/logger"
	"github.com/systech-labs/deskflow/internal/shared/services/markdown"
)

const eventBufferSize = 256

// initInfrastructure sets up Redis, repositories, the transaction manager and
// the auth services.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db, log)
	c.txManager = db.NewTransactionManager(c.db)
	c.markdownSvc = markdown.NewMarkdownService()

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// initEvents starts the dispatcher and subscribes the lifecycle sinks and the
// queue notifier.
func (c *Container) initEvents() error {
	cfg := c.cfg
	log := c.log

	c.dispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, log)

	var sinks []pubsub.Sink
	if c.redis != nil {
		c.lifecycleBus = pubsub.NewRedisLifecycleBus(c.redis, cfg.Redis.Channel, log)
		sinks = append(sinks, c.lifecycleBus)
	}
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		c.kafkaPublisher = pubsub.NewKafkaLifecyclePublisher(brokers, cfg.Kafka.Topic, log)
		sinks = append(sinks, c.kafkaPublisher)
		log.Infow("kafka lifecycle publisher enabled", "brokers", brokers, "topic", cfg.Kafka.Topic)
	}
	if len(sinks) > 0 {
		if err := c.dispatcher.Subscribe(events.WildcardEventType, pubsub.NewForwarder(log, sinks...)); err != nil {
			return fmt.Errorf("failed to subscribe lifecycle forwarder: %w", err)
		}
	}

	if cfg.Email.Enabled {
		mailer := email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			BaseURL:     cfg.Email.BaseURL,
		})
		notifier := email.NewQueueNotifier(mailer, cfg.Email.EscalationInbox, log)
		for _, eventType := range notifier.EventTypes() {
			if err := c.dispatcher.Subscribe(eventType, notifier); err != nil {
				return fmt.Errorf("failed to subscribe queue notifier: %w", err)
			}
		}
	}

	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}

	if c.lifecycleBus != nil {
		ctx, cancel := context.WithCancel(context.Background())
		c.stopSubscriber = cancel
		bus := c.lifecycleBus
		goroutine.SafeGo(log, "lifecycle-subscriber", func() {
			_ = bus.Subscribe(ctx, func(msg pubsub.LifecycleMessage) {
				log.Debugw("lifecycle event from peer instance",
					"event_type", msg.EventType,
					"aggregate_id", msg.AggregateID,
					"source", msg.InstanceID,
				)
			})
		})
	}

	return nil
}

// initPermissions loads the casbin policies and the middlewares that depend
// on them.
func (c *Container) initPermissions() error {
	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if c.cfg.Permission.SeedDefaults {
		if err := permission.SeedDefaults(enforcer, c.log); err != nil {
			return err
		}
	}
	c.enforcer = enforcer
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, c.log)

	if c.cfg.RateLimit.Enabled {
		if c.redis == nil {
			c.log.Warnw("rate limiting requires Redis, skipping")
			return nil
		}
		limiter := ratelimit.NewRedisRateLimiter(c.redis, "")
		c.rateLimit = middleware.RateLimit(limiter, ratelimit.Limits{
			PerMinute: c.cfg.RateLimit.RequestsPerMinute,
			PerHour:   c.cfg.RateLimit.RequestsPerHour,
		}, c.log)
	}

	return nil
}
