package email

import (
	"fmt"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// QueueMailer is the part of SMTPEmailService the notifier needs.
type QueueMailer interface {
	SendTicketEscalatedEmail(to string, n QueueNotice) error
	SendTicketReassignedEmail(to string, n QueueNotice) error
}

// QueueNotifier mails the internal queue inbox whenever a ticket is escalated
// or reassigned to internal.
type QueueNotifier struct {
	mailer QueueMailer
	inbox  string
	logger logger.Interface
}

var _ events.EventHandler = (*QueueNotifier)(nil)

func NewQueueNotifier(mailer QueueMailer, inbox string, logger logger.Interface) *QueueNotifier {
	return &QueueNotifier{mailer: mailer, inbox: inbox, logger: logger}
}

// EventTypes lists the events the notifier must be subscribed to.
func (n *QueueNotifier) EventTypes() []string {
	return []string{ticket.EventTypeTicketEscalated, ticket.EventTypeTicketReassignedToInternal}
}

func (n *QueueNotifier) CanHandle(eventType string) bool {
	return eventType == ticket.EventTypeTicketEscalated || eventType == ticket.EventTypeTicketReassignedToInternal
}

func (n *QueueNotifier) Handle(event events.DomainEvent) error {
	var err error
	switch e := event.(type) {
	case ticket.TicketEscalatedEvent:
		err = n.mailer.SendTicketEscalatedEmail(n.inbox, QueueNotice{
			IssueKey: e.IssueKey,
			Title:    e.Title,
			Reason:   e.Reason,
			Note:     e.Note,
		})
	case ticket.TicketReassignedToInternalEvent:
		err = n.mailer.SendTicketReassignedEmail(n.inbox, QueueNotice{IssueKey: e.IssueKey})
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to notify queue about %s: %w", event.GetAggregateID(), err)
	}

	n.logger.Infow("queue notified", "event_type", event.GetEventType(), "aggregate_id", event.GetAggregateID())
	return nil
}
