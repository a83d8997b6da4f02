package devtask

import (
	"strconv"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
)

const (
	EventTypeDevTaskCreated       = "devtask.created"
	EventTypeDevTaskStatusChanged = "devtask.status_changed"
)

type CreatedEvent struct {
	events.BaseEvent
	DevTaskID       uint   `json:"dev_task_id"`
	IssueKey        string `json:"issue_key"`
	Title           string `json:"title"`
	SupportTicketID *uint  `json:"support_ticket_id,omitempty"`
	ImplementorID   uint   `json:"implementor_id"`
	DeveloperID     uint   `json:"developer_id"`
	TesterID        uint   `json:"tester_id"`
}

func NewCreatedEvent(d *DevTask) CreatedEvent {
	return CreatedEvent{
		BaseEvent:       events.NewBaseEvent(strconv.FormatUint(uint64(d.id), 10), EventTypeDevTaskCreated, d.createdAt),
		DevTaskID:       d.id,
		IssueKey:        d.issueKey,
		Title:           d.title,
		SupportTicketID: d.supportTicketID,
		ImplementorID:   d.roles.ImplementorID,
		DeveloperID:     d.roles.DeveloperID,
		TesterID:        d.roles.TesterID,
	}
}

type StatusChangedEvent struct {
	events.BaseEvent
	DevTaskID     uint   `json:"dev_task_id"`
	IssueKey      string `json:"issue_key"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	BlockedReason string `json:"blocked_reason,omitempty"`
	ChangedBy     uint   `json:"changed_by"`
}

func NewStatusChangedEvent(d *DevTask, old Status, changedBy uint) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent:     events.NewBaseEvent(strconv.FormatUint(uint64(d.id), 10), EventTypeDevTaskStatusChanged, d.updatedAt),
		DevTaskID:     d.id,
		IssueKey:      d.issueKey,
		OldStatus:     old.String(),
		NewStatus:     d.status.String(),
		BlockedReason: d.blockedReason,
		ChangedBy:     changedBy,
	}
}
