package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID       uint
	Actor          authorization.Actor
	Status         string
	Reason         string
	Resolution     string
	ResolutionNote string
}

type ChangeStatusUseCase struct {
	ticketRepo ticket.TicketRepository
	publisher  events.EventPublisher
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.TicketDTO, error) {
	uc.logger.WithContext(ctx).Infow("executing change ticket status use case", "ticket_id", cmd.TicketID, "status", cmd.Status)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.WithContext(ctx).Errorw("invalid change status command", "error", err)
		return nil, err
	}

	status, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := loadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor)
	if err != nil {
		return nil, err
	}

	oldStatus := t.Status()
	change := ticket.StatusChange{
		Status:         status,
		Reason:         cmd.Reason,
		Resolution:     cmd.Resolution,
		ResolutionNote: cmd.ResolutionNote,
	}
	if err := t.ApplyStatusChange(cmd.Actor, change); err != nil {
		uc.logger.WithContext(ctx).Warnw("status change rejected",
			"ticket_id", cmd.TicketID,
			"from", oldStatus,
			"to", status,
			"role", cmd.Actor.Role,
			"error", err,
		)
		return nil, common.DomainError(err)
	}

	if oldStatus != t.Status() {
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.WithContext(ctx).Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
			return nil, common.StorageError(err, "failed to update ticket")
		}
		common.PublishEvents(uc.publisher, uc.logger, t.GetEvents())
	}

	uc.logger.WithContext(ctx).Infow("ticket status changed", "ticket_id", cmd.TicketID, "from", oldStatus, "to", t.Status())

	return dto.ToTicketDTO(t, t.AvailableActions(cmd.Actor.Role), biztime.NowUTC()), nil
}

func (uc *ChangeStatusUseCase) validateCommand(cmd ChangeStatusCommand) error {
	if err := validateActor(cmd.Actor); err != nil {
		return err
	}
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.Status == "" {
		return errors.NewValidationError("status is required")
	}
	return nil
}
