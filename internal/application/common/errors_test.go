package common

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/systech-labs/deskflow/internal/domain/policy"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	apperrors "github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

func TestDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorType
	}{
		{"not permitted", fmt.Errorf("%w: close", policy.ErrNotPermitted), apperrors.ErrorTypeForbidden},
		{"not found", fmt.Errorf("load: %w", ticket.ErrTicketNotFound), apperrors.ErrorTypeNotFound},
		{"component mismatch", product.ErrComponentNotInModule, apperrors.ErrorTypeNotFound},
		{"conflict", sprint.ErrActiveSprintExists, apperrors.ErrorTypeConflict},
		{"app error passthrough", apperrors.NewUnauthorizedError("who"), apperrors.ErrorTypeUnauthorized},
		{"plain rule violation", errors.New("title is required"), apperrors.ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperrors.GetAppError(DomainError(tt.err))
			if assert.NotNil(t, appErr) {
				assert.Equal(t, tt.want, appErr.Type)
			}
		})
	}

	assert.Nil(t, DomainError(nil))
}

func TestStorageError(t *testing.T) {
	err := StorageError(errors.New("dial tcp: connection refused"), "failed to load ticket")
	appErr := apperrors.GetAppError(err)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
		assert.Equal(t, "failed to load ticket", appErr.Message)
		assert.NotContains(t, appErr.Error(), "connection refused")
	}

	assert.True(t, apperrors.IsConflictError(StorageError(ticket.ErrVersionConflict, "x")))
	assert.Nil(t, StorageError(nil, "x"))
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(events.DomainEvent) error {
	p.calls++
	return errors.New("bus down")
}

func (p *failingPublisher) PublishAll([]events.DomainEvent) error {
	p.calls++
	return errors.New("bus down")
}

func TestPublishEvents(t *testing.T) {
	pub := &failingPublisher{}

	PublishEvents(pub, logger.Nop(), nil)
	assert.Zero(t, pub.calls)

	evt := events.NewBaseEvent("1", "ticket.created", time.Now())
	PublishEvents(pub, logger.Nop(), []events.DomainEvent{&evt})
	assert.Equal(t, 1, pub.calls)

	PublishEvents(nil, logger.Nop(), []events.DomainEvent{&evt})
}
