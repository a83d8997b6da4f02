package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/domain/permission"
)

func SetupDevTaskRoutes(engine *gin.Engine, cfg *RouteConfig) {
	devTasks := engine.Group("/dev-tasks")
	devTasks.Use(cfg.guards()...)
	{
		devTasks.POST("",
			cfg.can(permission.ResourceDevTask, permission.ActionCreate),
			cfg.DevTaskHandler.CreateDevTask)
		devTasks.PATCH("/:id/status",
			cfg.can(permission.ResourceDevTask, permission.ActionUpdate),
			cfg.DevTaskHandler.ChangeStatus)
		devTasks.PATCH("/:id/story-points",
			cfg.can(permission.ResourceDevTask, permission.ActionUpdate),
			cfg.DevTaskHandler.UpdateStoryPoints)
		devTasks.PUT("/:id/sprint",
			cfg.can(permission.ResourceDevTask, permission.ActionUpdate),
			cfg.DevTaskHandler.AssignToSprint)
	}

	products := engine.Group("/products")
	products.Use(cfg.guards()...)
	products.GET("/:id/defaults",
		cfg.can(permission.ResourceProduct, permission.ActionRead),
		cfg.DevTaskHandler.ProductDefaults)
}
