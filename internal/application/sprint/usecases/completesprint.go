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

// MoveToBacklog is the only supported destination for unfinished work.
const MoveToBacklog = "backlog"

type CompleteSprintCommand struct {
	Actor    authorization.Actor
	SprintID uint
	// MoveIncompleteTo defaults to backlog.
	MoveIncompleteTo string
}

type CompleteSprintUseCase struct {
	sprintRepo  sprint.Repository
	devTaskRepo devtask.Repository
	txManager   db.Transactor
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewCompleteSprintUseCase(
	sprintRepo sprint.Repository,
	devTaskRepo devtask.Repository,
	txManager db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CompleteSprintUseCase {
	return &CompleteSprintUseCase{
		sprintRepo:  sprintRepo,
		devTaskRepo: devTaskRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute freezes the velocity from the done tasks and sends the rest back
// to the backlog, all in one transaction.
func (uc *CompleteSprintUseCase) Execute(ctx context.Context, cmd CompleteSprintCommand) (*dto.CloseResult, error) {
	uc.logger.WithContext(ctx).Infow("executing complete sprint use case", "sprint_id", cmd.SprintID)

	if err := requirePlanner(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.SprintID == 0 {
		return nil, errors.NewValidationError("sprint ID is required")
	}
	if cmd.MoveIncompleteTo != "" && cmd.MoveIncompleteTo != MoveToBacklog {
		return nil, errors.NewValidationError("unfinished tasks can only be moved to the backlog", cmd.MoveIncompleteTo)
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

		if err := uc.devTaskRepo.LockBySprint(txCtx, s.ID()); err != nil {
			return err
		}
		velocity, err := uc.devTaskRepo.SumDonePoints(txCtx, s.ID())
		if err != nil {
			return err
		}
		if err := s.Complete(velocity); err != nil {
			return err
		}
		if err := uc.sprintRepo.Update(txCtx, s); err != nil {
			return err
		}

		moved, err = uc.devTaskRepo.UnbindIncomplete(txCtx, s.ID())
		return err
	})
	if err != nil {
		uc.logger.WithContext(ctx).Warnw("failed to complete sprint", "sprint_id", cmd.SprintID, "error", err)
		return nil, common.StorageError(err, "failed to complete sprint")
	}

	common.PublishEvents(uc.publisher, uc.logger, s.GetEvents())

	uc.logger.WithContext(ctx).Infow("sprint completed", "sprint_id", s.ID(), "velocity", s.Velocity(), "moved_to_backlog", moved)

	return &dto.CloseResult{Sprint: dto.ToSprintDTO(s), MovedToBacklog: moved}, nil
}
