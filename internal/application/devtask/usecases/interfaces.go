package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/devtask/dto"
)

type ConvertTicketExecutor interface {
	Execute(ctx context.Context, cmd ConvertTicketCommand) (*dto.ConversionResult, error)
}

type CreateDevTaskExecutor interface {
	Execute(ctx context.Context, cmd CreateDevTaskCommand) (*dto.DevTaskDTO, error)
}

type ChangeDevTaskStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeDevTaskStatusCommand) (*dto.StatusChangeResult, error)
}

type UpdateStoryPointsExecutor interface {
	Execute(ctx context.Context, cmd UpdateStoryPointsCommand) (*dto.DevTaskDTO, error)
}

type AssignToSprintExecutor interface {
	Execute(ctx context.Context, cmd AssignToSprintCommand) (*dto.DevTaskDTO, error)
}

type GetConversionDefaultsExecutor interface {
	Execute(ctx context.Context, query GetConversionDefaultsQuery) (*dto.ConversionDefaults, error)
}
