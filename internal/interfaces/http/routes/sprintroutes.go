package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/domain/permission"
)

func SetupSprintRoutes(engine *gin.Engine, cfg *RouteConfig) {
	sprints := engine.Group("/sprints")
	sprints.Use(cfg.guards()...)
	{
		// Collection operations (no ID parameter)
		sprints.POST("",
			cfg.can(permission.ResourceSprint, permission.ActionManage),
			cfg.SprintHandler.CreateSprint)
		sprints.GET("/velocity",
			cfg.can(permission.ResourceSprint, permission.ActionRead),
			cfg.SprintHandler.VelocityTrend)

		sprints.POST("/:id/start",
			cfg.can(permission.ResourceSprint, permission.ActionManage),
			cfg.SprintHandler.StartSprint)
		sprints.POST("/:id/complete",
			cfg.can(permission.ResourceSprint, permission.ActionManage),
			cfg.SprintHandler.CompleteSprint)
		sprints.POST("/:id/cancel",
			cfg.can(permission.ResourceSprint, permission.ActionManage),
			cfg.SprintHandler.CancelSprint)
	}
}
