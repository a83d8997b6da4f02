package ticket

import (
	"strconv"
	"time"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
)

const (
	EventTypeTicketCreated              = "ticket.created"
	EventTypeTicketStatusChanged        = "ticket.status_changed"
	EventTypeTicketReopened             = "ticket.reopened"
	EventTypeTicketReassignedToInternal = "ticket.reassigned_to_internal"
	EventTypeTicketEscalated            = "ticket.escalated"
	EventTypeTicketAssigned             = "ticket.assigned"
)

func aggregateID(ticketID uint) string {
	return strconv.FormatUint(uint64(ticketID), 10)
}

type TicketCreatedEvent struct {
	events.BaseEvent
	TicketID   uint   `json:"ticket_id"`
	IssueKey   string `json:"issue_key"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	ReporterID uint   `json:"reporter_id"`
	ClientID   *uint  `json:"client_id,omitempty"`
}

func NewTicketCreatedEvent(t *Ticket) TicketCreatedEvent {
	return TicketCreatedEvent{
		BaseEvent:  events.NewBaseEvent(aggregateID(t.id), EventTypeTicketCreated, t.createdAt),
		TicketID:   t.id,
		IssueKey:   t.issueKey,
		Title:      t.title,
		Status:     t.status.String(),
		ReporterID: t.reporterID,
		ClientID:   t.clientID,
	}
}

type TicketStatusChangedEvent struct {
	events.BaseEvent
	TicketID  uint   `json:"ticket_id"`
	IssueKey  string `json:"issue_key"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedBy uint   `json:"changed_by"`
}

func NewTicketStatusChangedEvent(ticketID uint, issueKey string, from, to vo.TicketStatus, changedBy uint, at time.Time) TicketStatusChangedEvent {
	return TicketStatusChangedEvent{
		BaseEvent: events.NewBaseEvent(aggregateID(ticketID), EventTypeTicketStatusChanged, at),
		TicketID:  ticketID,
		IssueKey:  issueKey,
		OldStatus: from.String(),
		NewStatus: to.String(),
		ChangedBy: changedBy,
	}
}

type TicketReopenedEvent struct {
	events.BaseEvent
	TicketID   uint   `json:"ticket_id"`
	IssueKey   string `json:"issue_key"`
	FromStatus string `json:"from_status"`
	ReopenedBy uint   `json:"reopened_by"`
}

func NewTicketReopenedEvent(ticketID uint, issueKey string, from vo.TicketStatus, reopenedBy uint, at time.Time) TicketReopenedEvent {
	return TicketReopenedEvent{
		BaseEvent:  events.NewBaseEvent(aggregateID(ticketID), EventTypeTicketReopened, at),
		TicketID:   ticketID,
		IssueKey:   issueKey,
		FromStatus: from.String(),
		ReopenedBy: reopenedBy,
	}
}

type TicketReassignedToInternalEvent struct {
	events.BaseEvent
	TicketID     uint   `json:"ticket_id"`
	IssueKey     string `json:"issue_key"`
	ClientID     uint   `json:"client_id"`
	ReassignedBy uint   `json:"reassigned_by"`
}

func NewTicketReassignedToInternalEvent(ticketID uint, issueKey string, clientID, reassignedBy uint, at time.Time) TicketReassignedToInternalEvent {
	return TicketReassignedToInternalEvent{
		BaseEvent:    events.NewBaseEvent(aggregateID(ticketID), EventTypeTicketReassignedToInternal, at),
		TicketID:     ticketID,
		IssueKey:     issueKey,
		ClientID:     clientID,
		ReassignedBy: reassignedBy,
	}
}

type TicketEscalatedEvent struct {
	events.BaseEvent
	TicketID    uint   `json:"ticket_id"`
	IssueKey    string `json:"issue_key"`
	Title       string `json:"title"`
	Reason      string `json:"reason"`
	Note        string `json:"note,omitempty"`
	EscalatedBy uint   `json:"escalated_by"`
}

func NewTicketEscalatedEvent(ticketID uint, issueKey, title string, reason vo.EscalationReason, note string, escalatedBy uint, at time.Time) TicketEscalatedEvent {
	return TicketEscalatedEvent{
		BaseEvent:   events.NewBaseEvent(aggregateID(ticketID), EventTypeTicketEscalated, at),
		TicketID:    ticketID,
		IssueKey:    issueKey,
		Title:       title,
		Reason:      reason.String(),
		Note:        note,
		EscalatedBy: escalatedBy,
	}
}

type TicketAssignedEvent struct {
	events.BaseEvent
	TicketID   uint   `json:"ticket_id"`
	IssueKey   string `json:"issue_key"`
	AssigneeID uint   `json:"assignee_id"`
	AssignedBy uint   `json:"assigned_by"`
}

func NewTicketAssignedEvent(ticketID uint, issueKey string, assigneeID, assignedBy uint, at time.Time) TicketAssignedEvent {
	return TicketAssignedEvent{
		BaseEvent:  events.NewBaseEvent(aggregateID(ticketID), EventTypeTicketAssigned, at),
		TicketID:   ticketID,
		IssueKey:   issueKey,
		AssigneeID: assigneeID,
		AssignedBy: assignedBy,
	}
}
