package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketView, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.TicketDTO, error)
}

type ReassignToInternalExecutor interface {
	Execute(ctx context.Context, cmd ReassignToInternalCommand) (*ReassignToInternalResult, error)
}

type EscalateTicketExecutor interface {
	Execute(ctx context.Context, cmd EscalateTicketCommand) (*dto.TicketDTO, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error)
}

type AddAttachmentExecutor interface {
	Execute(ctx context.Context, cmd AddAttachmentCommand) (*dto.AttachmentDTO, error)
}

type LinkTicketsExecutor interface {
	Execute(ctx context.Context, cmd LinkTicketsCommand) (*dto.LinkDTO, error)
}

type SetParentExecutor interface {
	Execute(ctx context.Context, cmd SetParentCommand) (*dto.TicketDTO, error)
}

type GetAvailableActionsExecutor interface {
	Execute(ctx context.Context, query GetAvailableActionsQuery) (*AvailableActionsResult, error)
}

type EscalationQueueExecutor interface {
	Execute(ctx context.Context, query EscalationQueueQuery) (*dto.EscalationQueueDTO, error)
}
