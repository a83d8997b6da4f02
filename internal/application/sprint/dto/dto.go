package dto

import (
	"time"

	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
)

type SprintDTO struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Status      string     `json:"status"`
	Goal        string     `json:"goal,omitempty"`
	Velocity    *int       `json:"velocity"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToSprintDTO(s *sprint.Sprint) *SprintDTO {
	if s == nil {
		return nil
	}
	return &SprintDTO{
		ID:          s.ID(),
		Name:        s.Name(),
		StartDate:   s.StartDate().Format(biztime.DateLayout),
		EndDate:     s.EndDate().Format(biztime.DateLayout),
		Status:      s.Status().String(),
		Goal:        s.Goal(),
		Velocity:    s.Velocity(),
		StartedAt:   s.StartedAt(),
		CompletedAt: s.CompletedAt(),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

// CloseResult reports a completed or cancelled sprint and how many
// unfinished tasks went back to the backlog.
type CloseResult struct {
	Sprint         *SprintDTO `json:"sprint"`
	MovedToBacklog int64      `json:"moved_to_backlog"`
}
