package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/infrastructure/auth"
	"github.com/systech-labs/deskflow/internal/infrastructure/config"
	"github.com/systech-labs/deskflow/internal/infrastructure/permission"
	"github.com/systech-labs/deskflow/internal/infrastructure/pubsub"
	"github.com/systech-labs/deskflow/internal/interfaces/http/handlers"
	devtaskHandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/devtask"
	sprintHandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/sprint"
	ticketHandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/ticket"
	"github.com/systech-labs/deskflow/internal/interfaces/http/middleware"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/logger"
	"github.com/systech-labs/deskflow/internal/shared/services/markdown"
)

// Container holds all infrastructure components, repositories, handlers and
// background services. It wires everything together and provides Shutdown
// for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos     *repositories
	txManager *db.TransactionManager

	// Events
	dispatcher     *events.InMemoryEventDispatcher
	lifecycleBus   *pubsub.RedisLifecycleBus
	kafkaPublisher *pubsub.KafkaLifecyclePublisher
	stopSubscriber context.CancelFunc

	// Services
	jwtSvc      *auth.JWTService
	enforcer    *permission.Enforcer
	markdownSvc markdown.MarkdownService

	// Handlers
	ticketHandler  *ticketHandlers.Handler
	devTaskHandler *devtaskHandlers.Handler
	sprintHandler  *sprintHandlers.Handler
	healthHandler  *handlers.HealthHandler

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimit            gin.HandlerFunc
}

// NewContainer builds the container. Partially started services are stopped
// again when a later step fails.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	if err := c.initEvents(); err != nil {
		c.Shutdown()
		return nil, err
	}
	if err := c.initPermissions(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initHandlers()

	return c, nil
}

// JWTService exposes the token service so tests and tooling can mint tokens
// for the same secret.
func (c *Container) JWTService() *auth.JWTService {
	return c.jwtSvc
}

// Shutdown stops background work and closes external connections.
func (c *Container) Shutdown() {
	if c.stopSubscriber != nil {
		c.stopSubscriber()
	}

	// Drain queued events before the sinks go away.
	if c.dispatcher != nil {
		if err := c.dispatcher.Stop(); err != nil {
			c.log.Warnw("failed to stop event dispatcher", "error", err)
		}
	}

	if c.kafkaPublisher != nil {
		if err := c.kafkaPublisher.Close(); err != nil {
			c.log.Warnw("failed to close kafka publisher", "error", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
