package usecases

import (
	"context"
	"time"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/sprint/dto"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type CreateSprintCommand struct {
	Actor     authorization.Actor
	StartDate time.Time
	Goal      string
}

type CreateSprintUseCase struct {
	sprintRepo sprint.Repository
	logger     logger.Interface
}

func NewCreateSprintUseCase(sprintRepo sprint.Repository, logger logger.Interface) *CreateSprintUseCase {
	return &CreateSprintUseCase{
		sprintRepo: sprintRepo,
		logger:     logger,
	}
}

func (uc *CreateSprintUseCase) Execute(ctx context.Context, cmd CreateSprintCommand) (*dto.SprintDTO, error) {
	uc.logger.WithContext(ctx).Infow("executing create sprint use case", "start_date", cmd.StartDate)

	if err := requirePlanner(cmd.Actor); err != nil {
		return nil, err
	}

	s, err := sprint.NewSprint(cmd.StartDate, cmd.Goal)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.sprintRepo.Create(ctx, s); err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to create sprint", "name", s.Name(), "error", err)
		return nil, common.StorageError(err, "failed to create sprint")
	}

	uc.logger.WithContext(ctx).Infow("sprint created", "sprint_id", s.ID(), "name", s.Name(), "end_date", s.EndDate())

	return dto.ToSprintDTO(s), nil
}
