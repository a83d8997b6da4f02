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

// AddAttachmentCommand records metadata for a file already uploaded to
// object storage.
type AddAttachmentCommand struct {
	TicketID    uint
	Actor       authorization.Actor
	FileName    string
	ContentType string
	SizeBytes   int64
	URL         string
}

type AddAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	logger         logger.Interface
}

func NewAddAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	logger logger.Interface,
) *AddAttachmentUseCase {
	return &AddAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

func (uc *AddAttachmentUseCase) Execute(ctx context.Context, cmd AddAttachmentCommand) (*dto.AttachmentDTO, error) {
	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := loadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor)
	if err != nil {
		return nil, err
	}

	a, err := ticket.NewAttachment(t.ID(), cmd.FileName, cmd.ContentType, cmd.SizeBytes, cmd.URL, cmd.Actor.UserID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.attachmentRepo.Create(ctx, a); err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to save attachment", "ticket_id", cmd.TicketID, "error", err)
		return nil, common.StorageError(err, "failed to save attachment")
	}

	uc.logger.WithContext(ctx).Infow("attachment added", "ticket_id", t.ID(), "file_name", a.FileName(), "size_bytes", a.SizeBytes())

	result := dto.ToAttachmentDTO(a)
	return &result, nil
}
