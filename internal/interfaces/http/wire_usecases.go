package http

import (
	devtaskUsecases "github.com/systech-labs/deskflow/internal/application/devtask/usecases"
	sprintUsecases "github.com/systech-labs/deskflow/internal/application/sprint/usecases"
	ticketUsecases "github.com/systech-labs/deskflow/internal/application/ticket/usecases"
	devtaskHandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/devtask"
	sprintHandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/sprint"
	ticketHandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/ticket"
)

// initTicketUseCases wires the ticket lifecycle operations.
func (c *Container) initTicketUseCases() ticketHandlers.UseCases {
	r := c.repos
	log := c.log

	return ticketHandlers.UseCases{
		Create: ticketUsecases.NewCreateTicketUseCase(
			r.ticketRepo, r.productRepo, r.issueKeys, c.txManager, c.dispatcher, log,
		),
		Get: ticketUsecases.NewGetTicketUseCase(
			r.ticketRepo, r.commentRepo, r.attachmentRepo, r.linkRepo, r.devTaskRepo, c.markdownSvc, log,
		),
		ChangeStatus: ticketUsecases.NewChangeStatusUseCase(r.ticketRepo, c.dispatcher, log),
		ReassignInternal: ticketUsecases.NewReassignToInternalUseCase(
			r.ticketRepo, r.commentRepo, c.txManager, c.dispatcher, log,
		),
		Escalate:         ticketUsecases.NewEscalateTicketUseCase(r.ticketRepo, c.dispatcher, log),
		AddComment:       ticketUsecases.NewAddCommentUseCase(r.ticketRepo, r.commentRepo, log),
		AddAttachment:    ticketUsecases.NewAddAttachmentUseCase(r.ticketRepo, r.attachmentRepo, log),
		Link:             ticketUsecases.NewLinkTicketsUseCase(r.ticketRepo, r.linkRepo, log),
		SetParent:        ticketUsecases.NewSetParentUseCase(r.ticketRepo, log),
		AvailableActions: ticketUsecases.NewGetAvailableActionsUseCase(r.ticketRepo, log),
		EscalationQueue:  ticketUsecases.NewEscalationQueueUseCase(r.ticketRepo, log),
	}
}

// initDevTaskUseCases wires dev task creation, conversion and updates.
func (c *Container) initDevTaskUseCases() devtaskHandlers.UseCases {
	r := c.repos
	log := c.log

	return devtaskHandlers.UseCases{
		Create: devtaskUsecases.NewCreateDevTaskUseCase(
			r.devTaskRepo, r.productRepo, r.issueKeys, c.txManager, c.dispatcher, log,
		),
		Convert: devtaskUsecases.NewConvertTicketToDevTaskUseCase(
			r.ticketRepo, r.commentRepo, r.devTaskRepo, r.productRepo, r.issueKeys,
			c.txManager, c.dispatcher,
			devtaskUsecases.ConvertTicketOptions{
				RejectDuplicateConversion: c.cfg.DevTask.RejectDuplicateConversion,
			},
			log,
		),
		ChangeStatus:      devtaskUsecases.NewChangeDevTaskStatusUseCase(r.devTaskRepo, c.dispatcher, log),
		UpdateStoryPoints: devtaskUsecases.NewUpdateStoryPointsUseCase(r.devTaskRepo, log),
		AssignToSprint:    devtaskUsecases.NewAssignToSprintUseCase(r.devTaskRepo, r.sprintRepo, c.txManager, log),
		Defaults:          devtaskUsecases.NewGetConversionDefaultsUseCase(r.productRepo, log),
	}
}

// initSprintUseCases wires the sprint planner.
func (c *Container) initSprintUseCases() sprintHandlers.UseCases {
	r := c.repos
	log := c.log

	return sprintHandlers.UseCases{
		Create:   sprintUsecases.NewCreateSprintUseCase(r.sprintRepo, log),
		Start:    sprintUsecases.NewStartSprintUseCase(r.sprintRepo, c.txManager, c.dispatcher, log),
		Complete: sprintUsecases.NewCompleteSprintUseCase(r.sprintRepo, r.devTaskRepo, c.txManager, c.dispatcher, log),
		Cancel:   sprintUsecases.NewCancelSprintUseCase(r.sprintRepo, r.devTaskRepo, c.txManager, c.dispatcher, log),
		Velocity: sprintUsecases.NewVelocityTrendUseCase(r.sprintRepo, log),
	}
}
