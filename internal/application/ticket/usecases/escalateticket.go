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

type EscalateTicketCommand struct {
	TicketID uint
	Actor    authorization.Actor
	Reason   string
	Note     string
}

type EscalateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	publisher  events.EventPublisher
	logger     logger.Interface
}

func NewEscalateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *EscalateTicketUseCase {
	return &EscalateTicketUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *EscalateTicketUseCase) Execute(ctx context.Context, cmd EscalateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.WithContext(ctx).Infow("executing escalate ticket use case", "ticket_id", cmd.TicketID, "reason", cmd.Reason)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	reason := vo.EscalationReason(cmd.Reason)
	if !reason.IsValid() {
		return nil, errors.NewValidationError("invalid escalation reason", cmd.Reason)
	}

	t, err := loadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor)
	if err != nil {
		return nil, err
	}

	if err := t.Escalate(cmd.Actor, reason, cmd.Note); err != nil {
		uc.logger.WithContext(ctx).Warnw("escalation rejected", "ticket_id", cmd.TicketID, "error", err)
		return nil, common.DomainError(err)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, common.StorageError(err, "failed to update ticket")
	}

	common.PublishEvents(uc.publisher, uc.logger, t.GetEvents())

	uc.logger.WithContext(ctx).Infow("ticket escalated", "ticket_id", t.ID(), "issue_key", t.IssueKey(), "reason", reason)

	return dto.ToTicketDTO(t, t.AvailableActions(cmd.Actor.Role), biztime.NowUTC()), nil
}
