package common

import (
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// PublishEvents hands committed events to the dispatcher. Publishing is
// best effort; a failure is logged and never undoes the committed change.
func PublishEvents(publisher events.EventPublisher, log logger.Interface, evts []events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.PublishAll(evts); err != nil {
		log.Warnw("failed to publish events", "count", len(evts), "error", err)
	}
}
