package sprint

import (
	"strconv"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
)

const (
	EventTypeSprintStarted   = "sprint.started"
	EventTypeSprintCompleted = "sprint.completed"
	EventTypeSprintCancelled = "sprint.cancelled"
)

// LifecycleEvent is raised for every sprint status change.
type LifecycleEvent struct {
	events.BaseEvent
	SprintID uint   `json:"sprint_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Velocity *int   `json:"velocity,omitempty"`
}

func NewLifecycleEvent(s *Sprint, eventType string) LifecycleEvent {
	return LifecycleEvent{
		BaseEvent: events.NewBaseEvent(strconv.FormatUint(uint64(s.id), 10), eventType, s.updatedAt),
		SprintID:  s.id,
		Name:      s.name,
		Status:    s.status.String(),
		Velocity:  s.Velocity(),
	}
}
