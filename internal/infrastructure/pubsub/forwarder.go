package pubsub

import (
	"context"
	"errors"
	"time"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

const sinkTimeout = 5 * time.Second

// Sink is an external destination for lifecycle events.
type Sink interface {
	Name() string
	Publish(ctx context.Context, event events.DomainEvent) error
}

// Forwarder is an events.EventHandler that copies every dispatched event to
// the configured sinks. A failing sink does not stop the others.
type Forwarder struct {
	sinks  []Sink
	logger logger.Interface
}

var _ events.EventHandler = (*Forwarder)(nil)

func NewForwarder(logger logger.Interface, sinks ...Sink) *Forwarder {
	return &Forwarder{sinks: sinks, logger: logger}
}

func (f *Forwarder) CanHandle(string) bool { return len(f.sinks) > 0 }

func (f *Forwarder) Handle(event events.DomainEvent) error {
	var errs []error
	for _, sink := range f.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		err := sink.Publish(ctx, event)
		cancel()
		if err != nil {
			f.logger.Warnw("lifecycle sink failed",
				"sink", sink.Name(),
				"event_type", event.GetEventType(),
				"error", err,
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
