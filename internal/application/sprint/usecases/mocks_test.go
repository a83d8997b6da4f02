package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
)

// mockSprintRepository keeps sprints in a map keyed by ID.
type mockSprintRepository struct {
	sprints map[uint]*sprint.Sprint
	nextID  uint
	updates int
}

func newMockSprintRepository(sprints ...*sprint.Sprint) *mockSprintRepository {
	m := &mockSprintRepository{sprints: make(map[uint]*sprint.Sprint), nextID: 100}
	for _, s := range sprints {
		m.sprints[s.ID()] = s
	}
	return m
}

func (m *mockSprintRepository) Create(ctx context.Context, s *sprint.Sprint) error {
	m.nextID++
	if err := s.SetID(m.nextID); err != nil {
		return err
	}
	m.sprints[s.ID()] = s
	return nil
}

func (m *mockSprintRepository) Update(ctx context.Context, s *sprint.Sprint) error {
	m.updates++
	return nil
}

func (m *mockSprintRepository) GetByID(ctx context.Context, id uint) (*sprint.Sprint, error) {
	if s, ok := m.sprints[id]; ok {
		return s, nil
	}
	return nil, sprint.ErrSprintNotFound
}

func (m *mockSprintRepository) GetByIDForUpdate(ctx context.Context, id uint) (*sprint.Sprint, error) {
	return m.GetByID(ctx, id)
}

func (m *mockSprintRepository) FindActive(ctx context.Context) (*sprint.Sprint, error) {
	for _, s := range m.sprints {
		if s.Status() == sprint.StatusActive {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockSprintRepository) ListCompleted(ctx context.Context) ([]*sprint.Sprint, error) {
	var out []*sprint.Sprint
	for _, s := range m.sprints {
		if s.Status() == sprint.StatusCompleted {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

type mockDevTaskRepository struct {
	devtask.Repository
	donePoints map[uint]int
	incomplete map[uint]int64
	calls      []string
}

func (m *mockDevTaskRepository) LockBySprint(ctx context.Context, sprintID uint) error {
	m.calls = append(m.calls, "lock")
	return nil
}

func (m *mockDevTaskRepository) SumDonePoints(ctx context.Context, sprintID uint) (int, error) {
	m.calls = append(m.calls, "sum")
	return m.donePoints[sprintID], nil
}

func (m *mockDevTaskRepository) UnbindIncomplete(ctx context.Context, sprintID uint) (int64, error) {
	m.calls = append(m.calls, "unbind")
	n := m.incomplete[sprintID]
	delete(m.incomplete, sprintID)
	return n, nil
}

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockPublisher struct {
	published []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	m.published = append(m.published, evts...)
	return nil
}

var (
	adminActor = authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}
	agentActor = authorization.Actor{UserID: 2, Role: authorization.RoleAgent}
)

func storedSprint(id uint, status sprint.Status, start time.Time, velocity *int) *sprint.Sprint {
	s, err := sprint.ReconstructSprint(sprint.ReconstructParams{
		ID:        id,
		Name:      sprint.GenerateSprintName(start),
		StartDate: start,
		EndDate:   sprint.CalculateEndDate(start),
		Status:    status,
		Velocity:  velocity,
		Version:   1,
		CreatedAt: start,
		UpdatedAt: start,
	})
	if err != nil {
		panic(err)
	}
	return s
}

func intPtr(v int) *int { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
