package usecases

import (
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
)

// requirePlanner lets only the admin tier drive the sprint lifecycle.
func requirePlanner(actor authorization.Actor) error {
	if err := actor.Validate(); err != nil {
		return errors.NewUnauthorizedError(err.Error())
	}
	if !actor.IsAdminTier() {
		return errors.NewForbiddenError("only admins can manage sprints")
	}
	return nil
}
