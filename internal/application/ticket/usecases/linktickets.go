package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type LinkTicketsCommand struct {
	Actor    authorization.Actor
	SourceID uint
	TargetID uint
	LinkType string
}

type LinkTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	linkRepo   ticket.LinkRepository
	logger     logger.Interface
}

func NewLinkTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	linkRepo ticket.LinkRepository,
	logger logger.Interface,
) *LinkTicketsUseCase {
	return &LinkTicketsUseCase{
		ticketRepo: ticketRepo,
		linkRepo:   linkRepo,
		logger:     logger,
	}
}

func (uc *LinkTicketsUseCase) Execute(ctx context.Context, cmd LinkTicketsCommand) (*dto.LinkDTO, error) {
	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}

	linkType := vo.LinkType(cmd.LinkType)
	if cmd.LinkType == "" {
		linkType = vo.LinkRelatesTo
	}
	link, err := ticket.NewLink(cmd.SourceID, cmd.TargetID, linkType)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if _, err := loadVisibleTicket(ctx, uc.ticketRepo, cmd.SourceID, cmd.Actor); err != nil {
		return nil, err
	}
	if _, err := loadVisibleTicket(ctx, uc.ticketRepo, cmd.TargetID, cmd.Actor); err != nil {
		return nil, err
	}

	if err := uc.linkRepo.Create(ctx, link); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("tickets are already linked with this type")
		}
		uc.logger.WithContext(ctx).Errorw("failed to save link", "source_id", cmd.SourceID, "target_id", cmd.TargetID, "error", err)
		return nil, common.StorageError(err, "failed to link tickets")
	}

	uc.logger.WithContext(ctx).Infow("tickets linked", "source_id", cmd.SourceID, "target_id", cmd.TargetID, "link_type", linkType)

	result := dto.ToLinkDTO(link)
	return &result, nil
}
