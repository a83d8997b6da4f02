// Package common holds helpers shared by the application use cases.
package common

import (
	"errors"

	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/policy"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	apperrors "github.com/systech-labs/deskflow/internal/shared/errors"
)

var notFoundErrors = []error{
	ticket.ErrTicketNotFound,
	devtask.ErrDevTaskNotFound,
	sprint.ErrSprintNotFound,
	product.ErrProductNotFound,
	product.ErrModuleNotFound,
	product.ErrComponentNotFound,
	product.ErrAddonNotFound,
	product.ErrFeatureNotFound,
	product.ErrComponentNotInModule,
}

var conflictErrors = []error{
	ticket.ErrVersionConflict,
	devtask.ErrVersionConflict,
	sprint.ErrVersionConflict,
	sprint.ErrActiveSprintExists,
	sprint.ErrInvalidTransition,
}

func classify(err error) (*apperrors.AppError, bool) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr, true
	}
	if errors.Is(err, policy.ErrNotPermitted) {
		return apperrors.NewForbiddenError(err.Error()), true
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return apperrors.NewNotFoundError(err.Error()), true
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return apperrors.NewConflictError(err.Error()), true
		}
	}
	return nil, false
}

// DomainError maps an error returned by an entity method. Anything not
// recognised is a validation failure carrying the entity's message.
func DomainError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := classify(err); ok {
		return appErr
	}
	return apperrors.NewValidationError(err.Error())
}

// StorageError maps an error returned by a repository. Anything not
// recognised is reported as an internal failure with message and the
// underlying error is not exposed.
func StorageError(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := classify(err); ok {
		return appErr
	}
	return apperrors.NewInternalError(message)
}
