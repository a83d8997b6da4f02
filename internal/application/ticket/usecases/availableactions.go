package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type GetAvailableActionsQuery struct {
	Actor    authorization.Actor
	TicketID uint
}

type AvailableActionsResult struct {
	TicketID uint     `json:"ticket_id"`
	Status   string   `json:"status"`
	Role     string   `json:"role"`
	Actions  []string `json:"actions"`
}

type GetAvailableActionsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetAvailableActionsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GetAvailableActionsUseCase {
	return &GetAvailableActionsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetAvailableActionsUseCase) Execute(ctx context.Context, query GetAvailableActionsQuery) (*AvailableActionsResult, error) {
	if err := validateActor(query.Actor); err != nil {
		return nil, err
	}
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := loadVisibleTicket(ctx, uc.ticketRepo, query.TicketID, query.Actor)
	if err != nil {
		return nil, err
	}

	return &AvailableActionsResult{
		TicketID: t.ID(),
		Status:   t.Status().String(),
		Role:     query.Actor.Role.String(),
		Actions:  dto.ActionStrings(t.AvailableActions(query.Actor.Role)),
	}, nil
}
