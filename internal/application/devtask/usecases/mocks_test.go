package usecases

import (
	"context"
	"time"

	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
)

type mockTicketRepository struct {
	ticket.TicketRepository
	tickets    map[uint]*ticket.Ticket
	versions   map[uint]int
	UpdateFunc func(ctx context.Context, t *ticket.Ticket) error
	updates    int
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if t, ok := m.tickets[id]; ok {
		return t, nil
	}
	return nil, ticket.ErrTicketNotFound
}

// Update applies the optimistic version check of the gorm repository.
func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.updates++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	if !t.Changed() {
		return nil
	}
	if m.versions[t.ID()] != t.Version()-1 {
		return ticket.ErrVersionConflict
	}
	m.versions[t.ID()] = t.Version()
	return nil
}

type mockCommentRepository struct {
	ticket.CommentRepository
	CreateFunc func(ctx context.Context, c *ticket.Comment) error
	created    []*ticket.Comment
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	m.created = append(m.created, c)
	return c.SetID(uint(len(m.created)))
}

type mockDevTaskRepository struct {
	devtask.Repository
	tasks                map[uint]*devtask.DevTask
	created              []*devtask.DevTask
	updates              int
	HasOpenForTicketFunc func(ctx context.Context, ticketID uint) (bool, error)
}

func newMockDevTaskRepository(tasks ...*devtask.DevTask) *mockDevTaskRepository {
	m := &mockDevTaskRepository{tasks: make(map[uint]*devtask.DevTask)}
	for _, d := range tasks {
		m.tasks[d.ID()] = d
	}
	return m
}

func (m *mockDevTaskRepository) Create(ctx context.Context, d *devtask.DevTask) error {
	m.created = append(m.created, d)
	return d.SetID(uint(100 + len(m.created)))
}

func (m *mockDevTaskRepository) Update(ctx context.Context, d *devtask.DevTask) error {
	m.updates++
	return nil
}

func (m *mockDevTaskRepository) GetByID(ctx context.Context, id uint) (*devtask.DevTask, error) {
	if d, ok := m.tasks[id]; ok {
		return d, nil
	}
	return nil, devtask.ErrDevTaskNotFound
}

func (m *mockDevTaskRepository) HasOpenForTicket(ctx context.Context, ticketID uint) (bool, error) {
	if m.HasOpenForTicketFunc != nil {
		return m.HasOpenForTicketFunc(ctx, ticketID)
	}
	return false, nil
}

// mockProductRepository serves a single CRM product with one module, one
// component under it and a component under a different module.
type mockProductRepository struct {
	product.Repository
	product *product.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		product: &product.Product{
			ID:                   1,
			Code:                 "CRM",
			Name:                 "CRM",
			DefaultImplementorID: uintPtr(10),
			DefaultDeveloperID:   uintPtr(11),
			DefaultTesterID:      uintPtr(12),
		},
	}
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	if m.product != nil && m.product.ID == id {
		return m.product, nil
	}
	return nil, product.ErrProductNotFound
}

func (m *mockProductRepository) GetModule(ctx context.Context, id uint) (*product.Module, error) {
	switch id {
	case 1:
		return &product.Module{ID: 1, ProductID: 1, Name: "Billing"}, nil
	case 2:
		return &product.Module{ID: 2, ProductID: 1, Name: "Reports"}, nil
	}
	return nil, product.ErrModuleNotFound
}

func (m *mockProductRepository) GetComponent(ctx context.Context, id uint) (*product.Component, error) {
	switch id {
	case 1:
		return &product.Component{ID: 1, ModuleID: 1, Name: "Invoices"}, nil
	case 2:
		return &product.Component{ID: 2, ModuleID: 2, Name: "Exports"}, nil
	}
	return nil, product.ErrComponentNotFound
}

func (m *mockProductRepository) GetAddon(ctx context.Context, id uint) (*product.Addon, error) {
	return nil, product.ErrAddonNotFound
}

func (m *mockProductRepository) GetFeature(ctx context.Context, id uint) (*product.Feature, error) {
	return nil, product.ErrFeatureNotFound
}

type mockKeyAllocator struct {
	calls int
}

func (m *mockKeyAllocator) Next(ctx context.Context, productID uint, kind product.IssueKind) (string, error) {
	m.calls++
	return product.FormatIssueKey("CRM", kind, int64(m.calls)), nil
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

func (m *mockPublisher) eventTypes() []string {
	types := make([]string, 0, len(m.published))
	for _, e := range m.published {
		types = append(types, e.GetEventType())
	}
	return types
}

type mockSprintRepository struct {
	sprint.Repository
	sprints map[uint]*sprint.Sprint
}

func (m *mockSprintRepository) GetByIDForUpdate(ctx context.Context, id uint) (*sprint.Sprint, error) {
	if s, ok := m.sprints[id]; ok {
		return s, nil
	}
	return nil, sprint.ErrSprintNotFound
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func uintPtr(v uint) *uint { return &v }

var (
	adminActor  = authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}
	agentActor  = authorization.Actor{UserID: 2, Role: authorization.RoleAgent}
	clientActor = authorization.Actor{UserID: 3, Role: authorization.RoleClient, ClientID: uintPtr(42)}
)

var fullRoles = RoleInput{ImplementorID: 20, DeveloperID: 21, TesterID: 22}

func storedTicket(id uint, status vo.TicketStatus) *ticket.Ticket {
	return assignedTicket(id, status, nil)
}

func assignedTicket(id uint, status vo.TicketStatus, assigneeID *uint) *ticket.Ticket {
	now := time.Now().UTC()
	t, err := ticket.ReconstructTicket(ticket.ReconstructParams{
		ID:          id,
		IssueKey:    product.FormatIssueKey("CRM", product.IssueKindTicket, int64(id)),
		ProductID:   1,
		Title:       "Invoices do not export",
		Description: "Export spins forever",
		Type:        vo.TypeBug,
		Status:      status,
		Channel:     vo.ChannelInternal,
		ClientID:    uintPtr(42),
		AssigneeID:  assigneeID,
		ReporterID:  3,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		panic(err)
	}
	return t
}

func ticketRepoWith(tickets ...*ticket.Ticket) *mockTicketRepository {
	m := &mockTicketRepository{tickets: make(map[uint]*ticket.Ticket), versions: make(map[uint]int)}
	for _, t := range tickets {
		m.tickets[t.ID()] = t
		m.versions[t.ID()] = t.Version()
	}
	return m
}

func storedTask(id uint, status devtask.Status) *devtask.DevTask {
	now := time.Now().UTC()
	d, err := devtask.ReconstructDevTask(devtask.ReconstructParams{
		ID:        id,
		IssueKey:  product.FormatIssueKey("CRM", product.IssueKindDevTask, int64(id)),
		ProductID: 1,
		Title:     "Fix export",
		Type:      devtask.TypeBug,
		Status:    status,
		Roles:     devtask.Roles{ImplementorID: 20, DeveloperID: 21, TesterID: 22},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		panic(err)
	}
	return d
}

func storedSprint(id uint, status sprint.Status) *sprint.Sprint {
	now := time.Now().UTC()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	s, err := sprint.ReconstructSprint(sprint.ReconstructParams{
		ID:        id,
		Name:      sprint.GenerateSprintName(start),
		StartDate: start,
		EndDate:   sprint.CalculateEndDate(start),
		Status:    status,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		panic(err)
	}
	return s
}
