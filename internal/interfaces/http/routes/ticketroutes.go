package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/domain/permission"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
)

func SetupTicketRoutes(engine *gin.Engine, cfg *RouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(cfg.guards()...)
	{
		// Register specific paths BEFORE parameterized paths to avoid route conflicts

		tickets.POST("",
			cfg.can(permission.ResourceTicket, permission.ActionCreate),
			cfg.TicketHandler.CreateTicket)

		tickets.PATCH("/:id/status",
			cfg.can(permission.ResourceTicket, permission.ActionUpdate),
			cfg.TicketHandler.ChangeStatus)
		tickets.POST("/:id/reassign-internal",
			cfg.can(permission.ResourceTicket, permission.ActionUpdate),
			authorization.RequireInternal(),
			cfg.TicketHandler.ReassignToInternal)
		tickets.POST("/:id/escalate",
			cfg.can(permission.ResourceTicket, permission.ActionUpdate),
			cfg.TicketHandler.Escalate)
		tickets.POST("/:id/comments",
			cfg.can(permission.ResourceTicket, permission.ActionUpdate),
			cfg.TicketHandler.AddComment)
		tickets.POST("/:id/attachments",
			cfg.can(permission.ResourceTicket, permission.ActionUpdate),
			cfg.TicketHandler.AddAttachment)
		tickets.POST("/:id/links",
			cfg.can(permission.ResourceTicket, permission.ActionUpdate),
			cfg.TicketHandler.LinkTickets)
		tickets.PUT("/:id/parent",
			cfg.can(permission.ResourceTicket, permission.ActionUpdate),
			cfg.TicketHandler.SetParent)
		tickets.GET("/:id/actions",
			cfg.can(permission.ResourceTicket, permission.ActionRead),
			cfg.TicketHandler.AvailableActions)
		tickets.POST("/:id/dev-tasks",
			cfg.can(permission.ResourceDevTask, permission.ActionCreate),
			cfg.DevTaskHandler.ConvertTicket)

		// :id also accepts an issue key such as CRM-B001
		tickets.GET("/:id",
			cfg.can(permission.ResourceTicket, permission.ActionRead),
			cfg.TicketHandler.GetTicket)
	}

	escalations := engine.Group("/escalations")
	escalations.Use(cfg.guards()...)
	escalations.GET("",
		cfg.can(permission.ResourceEscalation, permission.ActionRead),
		cfg.TicketHandler.EscalationQueue)
}
