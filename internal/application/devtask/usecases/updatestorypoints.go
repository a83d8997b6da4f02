package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/devtask/dto"
	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type UpdateStoryPointsCommand struct {
	Actor       authorization.Actor
	DevTaskID   uint
	StoryPoints int
}

type UpdateStoryPointsUseCase struct {
	devTaskRepo devtask.Repository
	logger      logger.Interface
}

func NewUpdateStoryPointsUseCase(devTaskRepo devtask.Repository, logger logger.Interface) *UpdateStoryPointsUseCase {
	return &UpdateStoryPointsUseCase{
		devTaskRepo: devTaskRepo,
		logger:      logger,
	}
}

func (uc *UpdateStoryPointsUseCase) Execute(ctx context.Context, cmd UpdateStoryPointsCommand) (*dto.DevTaskDTO, error) {
	if err := requireInternal(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.DevTaskID == 0 {
		return nil, errors.NewValidationError("dev task ID is required")
	}

	task, err := uc.devTaskRepo.GetByID(ctx, cmd.DevTaskID)
	if err != nil {
		return nil, common.StorageError(err, "failed to load dev task")
	}

	before := task.StoryPoints()
	if err := task.UpdateStoryPoints(cmd.StoryPoints); err != nil {
		return nil, common.DomainError(err)
	}
	if task.StoryPoints() != before {
		if err := uc.devTaskRepo.Update(ctx, task); err != nil {
			uc.logger.WithContext(ctx).Errorw("failed to update story points", "dev_task_id", cmd.DevTaskID, "error", err)
			return nil, common.StorageError(err, "failed to update dev task")
		}
	}

	uc.logger.WithContext(ctx).Infow("story points updated", "dev_task_id", task.ID(), "story_points", task.StoryPoints())

	return dto.ToDevTaskDTO(task), nil
}
