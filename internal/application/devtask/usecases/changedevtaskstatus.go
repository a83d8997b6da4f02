package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/devtask/dto"
	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type ChangeDevTaskStatusCommand struct {
	Actor         authorization.Actor
	DevTaskID     uint
	Status        string
	BlockedReason string
}

type ChangeDevTaskStatusUseCase struct {
	devTaskRepo devtask.Repository
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewChangeDevTaskStatusUseCase(
	devTaskRepo devtask.Repository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ChangeDevTaskStatusUseCase {
	return &ChangeDevTaskStatusUseCase{
		devTaskRepo: devTaskRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *ChangeDevTaskStatusUseCase) Execute(ctx context.Context, cmd ChangeDevTaskStatusCommand) (*dto.StatusChangeResult, error) {
	uc.logger.WithContext(ctx).Infow("executing change dev task status use case", "dev_task_id", cmd.DevTaskID, "status", cmd.Status)

	if err := requireInternal(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.DevTaskID == 0 {
		return nil, errors.NewValidationError("dev task ID is required")
	}
	status, err := devtask.NewStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	task, err := uc.devTaskRepo.GetByID(ctx, cmd.DevTaskID)
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to load dev task", "dev_task_id", cmd.DevTaskID, "error", err)
		return nil, common.StorageError(err, "failed to load dev task")
	}

	oldStatus, oldReason := task.Status(), task.BlockedReason()
	warnings, err := task.ChangeStatus(status, cmd.BlockedReason, cmd.Actor.UserID)
	if err != nil {
		return nil, common.DomainError(err)
	}

	if task.Status() != oldStatus || task.BlockedReason() != oldReason {
		if err := uc.devTaskRepo.Update(ctx, task); err != nil {
			uc.logger.WithContext(ctx).Errorw("failed to update dev task", "dev_task_id", cmd.DevTaskID, "error", err)
			return nil, common.StorageError(err, "failed to update dev task")
		}
		common.PublishEvents(uc.publisher, uc.logger, task.GetEvents())
	}

	if len(warnings) > 0 {
		uc.logger.WithContext(ctx).Warnw("dev task status changed with warnings", "dev_task_id", task.ID(), "warnings", warnings)
	}

	if warnings == nil {
		warnings = []string{}
	}
	return &dto.StatusChangeResult{
		DevTask:  dto.ToDevTaskDTO(task),
		Warnings: warnings,
	}, nil
}
