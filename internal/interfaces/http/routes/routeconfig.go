package routes

import (
	"github.com/gin-gonic/gin"

	devtaskhandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/devtask"
	sprinthandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/sprint"
	tickethandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/ticket"
	"github.com/systech-labs/deskflow/internal/interfaces/http/middleware"
)

// RouteConfig carries the handlers and guards shared by every route group.
type RouteConfig struct {
	TicketHandler        *tickethandlers.Handler
	DevTaskHandler       *devtaskhandlers.Handler
	SprintHandler        *sprinthandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	// RateLimit runs after authentication when set.
	RateLimit gin.HandlerFunc
}

// guards returns the middleware every authenticated group starts with.
func (cfg *RouteConfig) guards() []gin.HandlerFunc {
	chain := []gin.HandlerFunc{cfg.AuthMiddleware.RequireAuth()}
	if cfg.RateLimit != nil {
		chain = append(chain, cfg.RateLimit)
	}
	return chain
}

func (cfg *RouteConfig) can(resource, action string) gin.HandlerFunc {
	return cfg.PermissionMiddleware.RequirePermission(resource, action)
}

// SetupAPIRoutes registers every ticket, dev task, sprint and product route.
func SetupAPIRoutes(engine *gin.Engine, cfg *RouteConfig) {
	SetupTicketRoutes(engine, cfg)
	SetupDevTaskRoutes(engine, cfg)
	SetupSprintRoutes(engine, cfg)
}
