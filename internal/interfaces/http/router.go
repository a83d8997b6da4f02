package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/systech-labs/deskflow/internal/infrastructure/config"
	"github.com/systech-labs/deskflow/internal/interfaces/http/middleware"
	"github.com/systech-labs/deskflow/internal/interfaces/http/routes"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter wires the container and registers every route.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}

	r := &Router{Container: c}
	r.SetupRoutes()
	return r, nil
}

// SetupRoutes installs the global middleware chain and the API routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(
		middleware.Recovery(r.log),
		middleware.RequestID(),
		middleware.CustomLogger(r.log),
		middleware.SecurityHeaders(),
		middleware.CORS(r.cfg.Server.OriginList()),
	)

	r.engine.GET("/health", r.healthHandler.HealthCheck)

	routes.SetupAPIRoutes(r.engine, &routes.RouteConfig{
		TicketHandler:        r.ticketHandler,
		DevTaskHandler:       r.devTaskHandler,
		SprintHandler:        r.sprintHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimit:            r.rateLimit,
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
