package usecases

import (
	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
)

// requireInternal rejects anonymous and client actors; dev tasks are never
// exposed outside the support desk.
func requireInternal(actor authorization.Actor) error {
	if err := actor.Validate(); err != nil {
		return errors.NewUnauthorizedError(err.Error())
	}
	if !actor.IsInternal() {
		return errors.NewForbiddenError("only internal staff can manage dev tasks")
	}
	return nil
}

// RoleInput holds the requested role holders. Zero means not provided.
type RoleInput struct {
	ImplementorID uint
	DeveloperID   uint
	TesterID      uint
}

// resolveRoles fills missing role holders from the product defaults when
// asked to. Explicit IDs always win.
func resolveRoles(in RoleInput, p *product.Product, useDefaults bool) devtask.Roles {
	roles := devtask.Roles{
		ImplementorID: in.ImplementorID,
		DeveloperID:   in.DeveloperID,
		TesterID:      in.TesterID,
	}
	if !useDefaults || p == nil {
		return roles
	}
	if roles.ImplementorID == 0 && p.DefaultImplementorID != nil {
		roles.ImplementorID = *p.DefaultImplementorID
	}
	if roles.DeveloperID == 0 && p.DefaultDeveloperID != nil {
		roles.DeveloperID = *p.DefaultDeveloperID
	}
	if roles.TesterID == 0 && p.DefaultTesterID != nil {
		roles.TesterID = *p.DefaultTesterID
	}
	return roles
}

func structureRefs(s devtask.Structure) product.StructureRefs {
	return product.StructureRefs{
		ModuleID:    s.ModuleID,
		ComponentID: s.ComponentID,
		AddonID:     s.AddonID,
		FeatureID:   s.FeatureID,
	}
}

// buildTask runs the field checks in the order users see them: roles,
// then type, then everything else.
func buildTask(params devtask.NewDevTaskParams, rawType string) (*devtask.DevTask, error) {
	if !params.Roles.Complete() {
		return nil, errors.NewValidationError(devtask.ErrMissingRoles.Error())
	}
	taskType, err := devtask.NewType(rawType)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	params.Type = taskType

	d, err := devtask.NewDevTask(params)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return d, nil
}
