package usecases

import (
	"context"
	"time"

	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
)

type mockTicketRepository struct {
	CreateFunc              func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc              func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc             func(ctx context.Context, id uint) (*ticket.Ticket, error)
	GetByIssueKeyFunc       func(ctx context.Context, key string) (*ticket.Ticket, error)
	GetChildrenFunc         func(ctx context.Context, parentID uint) ([]*ticket.Ticket, error)
	HasChildrenFunc         func(ctx context.Context, id uint) (bool, error)
	ListEscalationQueueFunc func(ctx context.Context) ([]*ticket.Ticket, error)

	// versions holds the stored version per ticket; Update checks it the
	// way the gorm repository does.
	versions map[uint]int
	updates  int
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.updates++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	if !t.Changed() {
		return nil
	}
	if stored, ok := m.versions[t.ID()]; ok && stored != t.Version()-1 {
		return ticket.ErrVersionConflict
	}
	if m.versions == nil {
		m.versions = make(map[uint]int)
	}
	m.versions[t.ID()] = t.Version()
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) GetByIssueKey(ctx context.Context, key string) (*ticket.Ticket, error) {
	if m.GetByIssueKeyFunc != nil {
		return m.GetByIssueKeyFunc(ctx, key)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) GetChildren(ctx context.Context, parentID uint) ([]*ticket.Ticket, error) {
	if m.GetChildrenFunc != nil {
		return m.GetChildrenFunc(ctx, parentID)
	}
	return nil, nil
}

func (m *mockTicketRepository) HasChildren(ctx context.Context, id uint) (bool, error) {
	if m.HasChildrenFunc != nil {
		return m.HasChildrenFunc(ctx, id)
	}
	return false, nil
}

func (m *mockTicketRepository) ListEscalationQueue(ctx context.Context) ([]*ticket.Ticket, error) {
	if m.ListEscalationQueueFunc != nil {
		return m.ListEscalationQueueFunc(ctx)
	}
	return nil, nil
}

type mockCommentRepository struct {
	CreateFunc       func(ctx context.Context, c *ticket.Comment) error
	ListByTicketFunc func(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return c.SetID(100)
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID, includeInternal)
	}
	return nil, nil
}

type mockAttachmentRepository struct {
	CreateFunc func(ctx context.Context, a *ticket.Attachment) error
}

func (m *mockAttachmentRepository) Create(ctx context.Context, a *ticket.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	a.SetID(200)
	return nil
}

func (m *mockAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	return nil, nil
}

type mockLinkRepository struct {
	CreateFunc func(ctx context.Context, l ticket.Link) error
	links      []ticket.Link
}

func (m *mockLinkRepository) Create(ctx context.Context, l ticket.Link) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, l)
	}
	m.links = append(m.links, l)
	return nil
}

func (m *mockLinkRepository) ListForTicket(ctx context.Context, ticketID uint) ([]ticket.Link, error) {
	return m.links, nil
}

type mockDevTaskRepository struct {
	devtask.Repository
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*devtask.DevTask, error)
}

func (m *mockDevTaskRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*devtask.DevTask, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockProductRepository struct {
	product.Repository
	GetByIDFunc func(ctx context.Context, id uint) (*product.Product, error)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &product.Product{ID: id, Code: "CRM", Name: "CRM"}, nil
}

type mockKeyAllocator struct {
	NextFunc func(ctx context.Context, productID uint, kind product.IssueKind) (string, error)
}

func (m *mockKeyAllocator) Next(ctx context.Context, productID uint, kind product.IssueKind) (string, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, productID, kind)
	}
	return product.FormatIssueKey("CRM", kind, 1), nil
}

// mockTransactor runs fn inline and counts calls.
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

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

var (
	adminActor  = authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}
	agentActor  = authorization.Actor{UserID: 2, Role: authorization.RoleAgent}
	clientActor = authorization.Actor{UserID: 3, Role: authorization.RoleClient, ClientID: uintPtr(42)}
	otherClient = authorization.Actor{UserID: 4, Role: authorization.RoleClient, ClientID: uintPtr(77)}
)

func storedTicket(id uint, status vo.TicketStatus, clientID *uint) *ticket.Ticket {
	return storedChild(id, status, clientID, nil)
}

func storedChild(id uint, status vo.TicketStatus, clientID, parentID *uint) *ticket.Ticket {
	now := time.Now().UTC()
	t, err := ticket.ReconstructTicket(ticket.ReconstructParams{
		ID:          id,
		IssueKey:    product.FormatIssueKey("CRM", product.IssueKindTicket, int64(id)),
		ProductID:   1,
		Title:       "Invoices do not export",
		Description: "Export **spins** forever",
		Type:        vo.TypeBug,
		Status:      status,
		Channel:     vo.ChannelInternal,
		ClientID:    clientID,
		ParentID:    parentID,
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

func repoWith(tickets ...*ticket.Ticket) *mockTicketRepository {
	byID := make(map[uint]*ticket.Ticket, len(tickets))
	versions := make(map[uint]int, len(tickets))
	for _, t := range tickets {
		byID[t.ID()] = t
		versions[t.ID()] = t.Version()
	}
	return &mockTicketRepository{
		versions: versions,
		GetByIDFunc: func(_ context.Context, id uint) (*ticket.Ticket, error) {
			if t, ok := byID[id]; ok {
				return t, nil
			}
			return nil, ticket.ErrTicketNotFound
		},
		GetByIssueKeyFunc: func(_ context.Context, key string) (*ticket.Ticket, error) {
			for _, t := range byID {
				if t.IssueKey() == key {
					return t, nil
				}
			}
			return nil, ticket.ErrTicketNotFound
		},
	}
}
