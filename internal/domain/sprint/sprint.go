package sprint

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
)

var (
	ErrSprintNotFound = errors.New("sprint not found")
	// ErrActiveSprintExists is returned when starting a sprint while another
	// one is active.
	ErrActiveSprintExists = errors.New("another sprint is already active")
	// ErrInvalidTransition wraps lifecycle moves the sprint's status does not
	// allow.
	ErrInvalidTransition = errors.New("invalid sprint transition")
	ErrVersionConflict   = errors.New("sprint was modified concurrently")
)

const maxGoalLength = 1000

type Sprint struct {
	id          uint
	name        string
	startDate   time.Time
	endDate     time.Time
	status      Status
	goal        string
	velocity    *int
	startedAt   *time.Time
	completedAt *time.Time
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	events.Recorder
}

// NewSprint plans a sprint starting on startDate. Name and end date are
// derived from the start date.
func NewSprint(startDate time.Time, goal string) (*Sprint, error) {
	if startDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}
	goal = strings.TrimSpace(goal)
	if len(goal) > maxGoalLength {
		return nil, fmt.Errorf("goal exceeds maximum length of %d characters", maxGoalLength)
	}

	start := StartOfDay(startDate)
	now := biztime.NowUTC()
	return &Sprint{
		name:      GenerateSprintName(start),
		startDate: start,
		endDate:   CalculateEndDate(start),
		status:    StatusPlanning,
		goal:      goal,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

type ReconstructParams struct {
	ID          uint
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Status      Status
	Goal        string
	Velocity    *int
	StartedAt   *time.Time
	CompletedAt *time.Time
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ReconstructSprint(p ReconstructParams) (*Sprint, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("sprint ID cannot be zero")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid sprint status: %q", p.Status)
	}
	return &Sprint{
		id:          p.ID,
		name:        p.Name,
		startDate:   p.StartDate,
		endDate:     p.EndDate,
		status:      p.Status,
		goal:        p.Goal,
		velocity:    p.Velocity,
		startedAt:   p.StartedAt,
		completedAt: p.CompletedAt,
		version:     p.Version,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}, nil
}

func (s *Sprint) ID() uint                { return s.id }
func (s *Sprint) Name() string            { return s.name }
func (s *Sprint) StartDate() time.Time    { return s.startDate }
func (s *Sprint) EndDate() time.Time      { return s.endDate }
func (s *Sprint) Status() Status          { return s.status }
func (s *Sprint) Goal() string            { return s.goal }
func (s *Sprint) StartedAt() *time.Time   { return s.startedAt }
func (s *Sprint) CompletedAt() *time.Time { return s.completedAt }
func (s *Sprint) Version() int            { return s.version }
func (s *Sprint) CreatedAt() time.Time    { return s.createdAt }
func (s *Sprint) UpdatedAt() time.Time    { return s.updatedAt }

// Velocity is nil until the sprint completes.
func (s *Sprint) Velocity() *int {
	if s.velocity == nil {
		return nil
	}
	v := *s.velocity
	return &v
}

func (s *Sprint) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("sprint ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("sprint ID cannot be zero")
	}
	s.id = id
	return nil
}

// Start activates a planning sprint. The caller guarantees no other sprint
// is active.
func (s *Sprint) Start() error {
	if s.status != StatusPlanning {
		return fmt.Errorf("%w: cannot start a %s sprint", ErrInvalidTransition, s.status)
	}
	now := biztime.NowUTC()
	s.status = StatusActive
	s.startedAt = &now
	s.touch()
	s.Record(NewLifecycleEvent(s, EventTypeSprintStarted))
	return nil
}

// Complete freezes velocity and closes an active sprint.
func (s *Sprint) Complete(velocity int) error {
	if s.status != StatusActive {
		return fmt.Errorf("%w: only an active sprint can be completed, sprint is %s", ErrInvalidTransition, s.status)
	}
	if velocity < 0 {
		return fmt.Errorf("velocity cannot be negative")
	}
	now := biztime.NowUTC()
	v := velocity
	s.velocity = &v
	s.status = StatusCompleted
	s.completedAt = &now
	s.touch()
	s.Record(NewLifecycleEvent(s, EventTypeSprintCompleted))
	return nil
}

// Cancel abandons a planning or active sprint without recording velocity.
func (s *Sprint) Cancel() error {
	if !s.status.IsOpen() {
		return fmt.Errorf("%w: cannot cancel a %s sprint", ErrInvalidTransition, s.status)
	}
	s.status = StatusCancelled
	s.touch()
	s.Record(NewLifecycleEvent(s, EventTypeSprintCancelled))
	return nil
}

// AcceptsTasks reports whether tasks may be bound to the sprint.
func (s *Sprint) AcceptsTasks() bool {
	return s.status.IsOpen()
}

func (s *Sprint) touch() {
	s.updatedAt = biztime.NowUTC()
	s.version++
}
