package usecases

import (
	"context"
	"fmt"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/sprint/dto"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type StartSprintCommand struct {
	Actor    authorization.Actor
	SprintID uint
}

// StartSprintUseCase activates a planning sprint. The active check and the
// status write share one transaction; the repository's unique active slot
// rejects a concurrent start that slips past the row lock.
type StartSprintUseCase struct {
	sprintRepo sprint.Repository
	txManager  db.Transactor
	publisher  events.EventPublisher
	logger     logger.Interface
}

func NewStartSprintUseCase(
	sprintRepo sprint.Repository,
	txManager db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *StartSprintUseCase {
	return &StartSprintUseCase{
		sprintRepo: sprintRepo,
		txManager:  txManager,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *StartSprintUseCase) Execute(ctx context.Context, cmd StartSprintCommand) (*dto.SprintDTO, error) {
	uc.logger.WithContext(ctx).Infow("executing start sprint use case", "sprint_id", cmd.SprintID)

	if err := requirePlanner(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.SprintID == 0 {
		return nil, errors.NewValidationError("sprint ID is required")
	}

	var s *sprint.Sprint
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		s, err = uc.sprintRepo.GetByIDForUpdate(txCtx, cmd.SprintID)
		if err != nil {
			return err
		}

		active, err := uc.sprintRepo.FindActive(txCtx)
		if err != nil {
			return err
		}
		if active != nil && active.ID() != s.ID() {
			return fmt.Errorf("%w: %s", sprint.ErrActiveSprintExists, active.Name())
		}

		if err := s.Start(); err != nil {
			return err
		}
		return uc.sprintRepo.Update(txCtx, s)
	})
	if err != nil {
		uc.logger.WithContext(ctx).Warnw("failed to start sprint", "sprint_id", cmd.SprintID, "error", err)
		return nil, common.StorageError(err, "failed to start sprint")
	}

	common.PublishEvents(uc.publisher, uc.logger, s.GetEvents())

	uc.logger.WithContext(ctx).Infow("sprint started", "sprint_id", s.ID(), "name", s.Name())

	return dto.ToSprintDTO(s), nil
}
