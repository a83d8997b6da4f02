package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/sprint/dto"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
)

type CreateSprintExecutor interface {
	Execute(ctx context.Context, cmd CreateSprintCommand) (*dto.SprintDTO, error)
}

type StartSprintExecutor interface {
	Execute(ctx context.Context, cmd StartSprintCommand) (*dto.SprintDTO, error)
}

type CompleteSprintExecutor interface {
	Execute(ctx context.Context, cmd CompleteSprintCommand) (*dto.CloseResult, error)
}

type CancelSprintExecutor interface {
	Execute(ctx context.Context, cmd CancelSprintCommand) (*dto.CloseResult, error)
}

type VelocityTrendExecutor interface {
	Execute(ctx context.Context, query VelocityTrendQuery) (*sprint.VelocityReport, error)
}
