package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// SetParentCommand attaches TicketID under ParentID; a nil ParentID
// detaches it.
type SetParentCommand struct {
	Actor    authorization.Actor
	TicketID uint
	ParentID *uint
}

type SetParentUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewSetParentUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *SetParentUseCase {
	return &SetParentUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *SetParentUseCase) Execute(ctx context.Context, cmd SetParentCommand) (*dto.TicketDTO, error) {
	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if !cmd.Actor.IsInternal() {
		return nil, errors.NewForbiddenError("only internal staff can change ticket hierarchy")
	}
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := loadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor)
	if err != nil {
		return nil, err
	}

	if cmd.ParentID == nil {
		t.ClearParent()
	} else {
		parent, err := loadVisibleTicket(ctx, uc.ticketRepo, *cmd.ParentID, cmd.Actor)
		if err != nil {
			return nil, err
		}
		hasChildren, err := uc.ticketRepo.HasChildren(ctx, t.ID())
		if err != nil {
			return nil, common.StorageError(err, "failed to check ticket children")
		}
		if err := t.SetParent(parent, hasChildren); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if t.Changed() {
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.WithContext(ctx).Errorw("failed to update ticket parent", "ticket_id", cmd.TicketID, "error", err)
			return nil, common.StorageError(err, "failed to update ticket")
		}
	}

	uc.logger.WithContext(ctx).Infow("ticket parent updated", "ticket_id", t.ID(), "parent_id", t.ParentID())

	return dto.ToTicketDTO(t, t.AvailableActions(cmd.Actor.Role), biztime.NowUTC()), nil
}
