package usecases

import (
	"context"
	"fmt"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/devtask/dto"
	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// AssignToSprintCommand binds a task to SprintID, or moves it to the
// backlog when SprintID is nil.
type AssignToSprintCommand struct {
	Actor     authorization.Actor
	DevTaskID uint
	SprintID  *uint
}

type AssignToSprintUseCase struct {
	devTaskRepo devtask.Repository
	sprintRepo  sprint.Repository
	txManager   db.Transactor
	logger      logger.Interface
}

func NewAssignToSprintUseCase(
	devTaskRepo devtask.Repository,
	sprintRepo sprint.Repository,
	txManager db.Transactor,
	logger logger.Interface,
) *AssignToSprintUseCase {
	return &AssignToSprintUseCase{
		devTaskRepo: devTaskRepo,
		sprintRepo:  sprintRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *AssignToSprintUseCase) Execute(ctx context.Context, cmd AssignToSprintCommand) (*dto.DevTaskDTO, error) {
	uc.logger.WithContext(ctx).Infow("executing assign dev task to sprint use case", "dev_task_id", cmd.DevTaskID, "sprint_id", cmd.SprintID)

	if err := requireInternal(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.DevTaskID == 0 {
		return nil, errors.NewValidationError("dev task ID is required")
	}

	var task *devtask.DevTask
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		task, err = uc.devTaskRepo.GetByID(txCtx, cmd.DevTaskID)
		if err != nil {
			return common.StorageError(err, "failed to load dev task")
		}

		if cmd.SprintID != nil {
			// lock so a concurrent complete cannot slip in between
			s, err := uc.sprintRepo.GetByIDForUpdate(txCtx, *cmd.SprintID)
			if err != nil {
				return common.StorageError(err, "failed to load sprint")
			}
			if !s.AcceptsTasks() {
				return errors.NewConflictError(fmt.Sprintf("sprint %s is %s and no longer accepts tasks", s.Name(), s.Status()))
			}
		}

		before := task.SprintID()
		task.AssignToSprint(cmd.SprintID)
		if sameSprint(before, task.SprintID()) {
			return nil
		}
		if err := uc.devTaskRepo.Update(txCtx, task); err != nil {
			return common.StorageError(err, "failed to update dev task")
		}
		return nil
	})
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to assign dev task to sprint", "dev_task_id", cmd.DevTaskID, "error", err)
		return nil, err
	}

	uc.logger.WithContext(ctx).Infow("dev task sprint updated", "dev_task_id", task.ID(), "sprint_id", task.SprintID())

	return dto.ToDevTaskDTO(task), nil
}

func sameSprint(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
