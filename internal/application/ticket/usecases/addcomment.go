package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type AddCommentCommand struct {
	TicketID uint
	Actor    authorization.Actor
	Body     string
	Internal bool
}

type AddCommentUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.WithContext(ctx).Infow("executing add comment use case", "ticket_id", cmd.TicketID, "internal", cmd.Internal)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Internal && !cmd.Actor.IsInternal() {
		return nil, errors.NewForbiddenError("clients cannot add internal comments")
	}

	t, err := loadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor)
	if err != nil {
		return nil, err
	}

	comment, err := ticket.NewComment(t.ID(), cmd.Actor.UserID, cmd.Body, cmd.Internal)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to save comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, common.StorageError(err, "failed to save comment")
	}

	uc.logger.WithContext(ctx).Infow("comment added", "ticket_id", t.ID(), "comment_id", comment.ID())

	result := dto.ToCommentDTO(comment)
	return &result, nil
}
