package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/sprint/dto"
	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type CancelSprintCommand struct {
	Actor    authorization.Actor
	SprintID uint
}

type CancelSprintUseCase struct {
	sprintRepo  sprint.Repository
	devTaskRepo devtask.Repository
	txManager   db.Transactor
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewCancelSprintUseCase(
	sprintRepo sprint.Repository,
	devTaskRepo devtask.Repository,
	txManager db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CancelSprintUseCase {
	return &CancelSprintUseCase{
		sprintRepo:  sprintRepo,
		devTaskRepo: devTaskRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *CancelSprintUseCase) Execute(ctx context.Context, cmd CancelSprintCommand) (*dto.CloseResult, error) {
	uc.logger.WithContext(ctx).Infow("executing cancel sprint use case", "sprint_id", cmd.SprintID)

	if err := requirePlanner(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.SprintID == 0 {
		return nil, errors.NewValidationError("sprint ID is required")
	}

	var (
		s     *sprint.Sprint
		moved int64
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		s, err = uc.sprintRepo.GetByIDForUpdate(txCtx, cmd.SprintID)
		if err != nil {
			return err
		}
		if err := s.Cancel(); err != nil {
			return err
		}
		if err := uc.devTaskRepo.LockBySprint(txCtx, s.ID()); err != nil {
			return err
		}
		if err := uc.sprintRepo.Update(txCtx, s); err != nil {
			return err
		}
		moved, err = uc.devTaskRepo.UnbindIncomplete(txCtx, s.ID())
		return err
	})
	if err != nil {
		uc.logger.WithContext(ctx).Warnw("failed to cancel sprint", "sprint_id", cmd.SprintID, "error", err)
		return nil, common.StorageError(err, "failed to cancel sprint")
	}

	common.PublishEvents(uc.publisher, uc.logger, s.GetEvents())

	uc.logger.WithContext(ctx).Infow("sprint cancelled", "sprint_id", s.ID(), "moved_to_backlog", moved)

	return &dto.CloseResult{Sprint: dto.ToSprintDTO(s), MovedToBacklog: moved}, nil
}
