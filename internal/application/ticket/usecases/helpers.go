package usecases

import (
	"context"
	"fmt"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
)

// loadVisibleTicket fetches a ticket and hides it from actors that may not
// see it, so clients cannot discover other accounts' ticket IDs.
func loadVisibleTicket(ctx context.Context, repo ticket.TicketRepository, id uint, actor authorization.Actor) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, common.StorageError(err, "failed to load ticket")
	}
	if !t.VisibleTo(actor) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", id))
	}
	return t, nil
}

func validateActor(actor authorization.Actor) error {
	if err := actor.Validate(); err != nil {
		return errors.NewUnauthorizedError(err.Error())
	}
	return nil
}
