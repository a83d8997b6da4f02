package usecases

import (
	"context"
	"strings"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type ReassignToInternalCommand struct {
	TicketID uint
	Actor    authorization.Actor
	Comment  string
}

type ReassignToInternalResult struct {
	Ticket  *dto.TicketDTO  `json:"ticket"`
	Comment *dto.CommentDTO `json:"comment"`
}

type ReassignToInternalUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	txManager   db.Transactor
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewReassignToInternalUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	txManager db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ReassignToInternalUseCase {
	return &ReassignToInternalUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute moves the ticket to pending_internal_review and stores the
// client-visible comment in the same transaction.
func (uc *ReassignToInternalUseCase) Execute(ctx context.Context, cmd ReassignToInternalCommand) (*ReassignToInternalResult, error) {
	uc.logger.WithContext(ctx).Infow("executing reassign to internal use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if strings.TrimSpace(cmd.Comment) == "" {
		return nil, errors.NewValidationError("a comment is required to reassign a ticket to internal")
	}

	var (
		t    *ticket.Ticket
		note *ticket.Comment
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		t, err = loadVisibleTicket(txCtx, uc.ticketRepo, cmd.TicketID, cmd.Actor)
		if err != nil {
			return err
		}

		note, err = t.ReassignToInternal(cmd.Actor, cmd.Comment)
		if err != nil {
			return common.DomainError(err)
		}

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return common.StorageError(err, "failed to update ticket")
		}
		if err := uc.commentRepo.Create(txCtx, note); err != nil {
			return common.StorageError(err, "failed to save comment")
		}
		return nil
	})
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to reassign ticket to internal", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	common.PublishEvents(uc.publisher, uc.logger, t.GetEvents())

	uc.logger.WithContext(ctx).Infow("ticket reassigned to internal", "ticket_id", t.ID(), "issue_key", t.IssueKey())

	comment := dto.ToCommentDTO(note)
	return &ReassignToInternalResult{
		Ticket:  dto.ToTicketDTO(t, t.AvailableActions(cmd.Actor.Role), biztime.NowUTC()),
		Comment: &comment,
	}, nil
}
