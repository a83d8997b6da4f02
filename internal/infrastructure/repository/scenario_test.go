package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	devtaskusecases "github.com/systech-labs/deskflow/internal/application/devtask/usecases"
	sprintusecases "github.com/systech-labs/deskflow/internal/application/sprint/usecases"
	ticketusecases "github.com/systech-labs/deskflow/internal/application/ticket/usecases"
	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/infrastructure/migration"
	"github.com/systech-labs/deskflow/internal/infrastructure/repository"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migration.NewAutoMigrateStrategy(logger.Nop()).Migrate(gdb))
	return gdb
}

// eventLog records the event types a dispatcher delivered.
type eventLog struct {
	mu    sync.Mutex
	types []string
}

func (l *eventLog) handler(eventType string) events.EventHandler {
	return events.NewSimpleEventHandler(eventType, func(e events.DomainEvent) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.types = append(l.types, e.GetEventType())
		return nil
	})
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.types...)
}

func startDispatcher(t *testing.T, log *eventLog, eventTypes ...string) *events.InMemoryEventDispatcher {
	t.Helper()
	d := events.NewInMemoryEventDispatcher(16, logger.Nop())
	for _, et := range eventTypes {
		require.NoError(t, d.Subscribe(et, log.handler(et)))
	}
	require.NoError(t, d.Start())
	return d
}

func TestScenario_ReassignClientTicketToInternal(t *testing.T) {
	gdb := openDB(t)
	ctx := context.Background()
	log := logger.Nop()
	txManager := db.NewTransactionManager(gdb)

	recorded := &eventLog{}
	dispatcher := startDispatcher(t, recorded, ticket.EventTypeTicketReassignedToInternal)

	products := repository.NewProductRepository(gdb)
	tickets := repository.NewTicketRepository(gdb, log)
	comments := repository.NewTicketCommentRepository(gdb)

	crm, err := product.NewProduct("CRM", "Customer Relations")
	require.NoError(t, err)
	require.NoError(t, products.Create(ctx, crm))

	agent := authorization.Actor{UserID: 2, Role: authorization.RoleAgent}
	clientID := uint(42)

	create := ticketusecases.NewCreateTicketUseCase(
		tickets, products, repository.NewIssueKeyAllocator(gdb, products), txManager, dispatcher, log)
	created, err := create.Execute(ctx, ticketusecases.CreateTicketCommand{
		Actor:     agent,
		ProductID: crm.ID,
		Title:     "Client cannot export invoices",
		ClientID:  &clientID,
	})
	require.NoError(t, err)
	assert.Equal(t, "CRM-B001", created.IssueKey)
	assert.Equal(t, "open", created.Status)
	assert.Nil(t, created.PushedToSystechAt)

	reassign := ticketusecases.NewReassignToInternalUseCase(tickets, comments, txManager, dispatcher, log)
	cmd := ticketusecases.ReassignToInternalCommand{
		TicketID: created.ID,
		Actor:    agent,
		Comment:  "needs client input",
	}

	result, err := reassign.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "pending_internal_review", result.Ticket.Status)
	require.NotNil(t, result.Ticket.PushedToSystechAt)
	assert.Equal(t, "needs client input", result.Comment.Body)

	stored, err := tickets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending_internal_review", stored.Status().String())
	require.NotNil(t, stored.PushedToSystechAt())

	visible, err := comments.ListByTicket(ctx, created.ID, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "needs client input", visible[0].Body())

	_, err = reassign.Execute(ctx, cmd)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err) || errors.IsConflictError(err))

	again, err := tickets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Version(), again.Version())

	require.NoError(t, dispatcher.Stop())
	assert.Equal(t, []string{ticket.EventTypeTicketReassignedToInternal}, recorded.snapshot())
}

func TestScenario_SingleActiveSprint(t *testing.T) {
	gdb := openDB(t)
	ctx := context.Background()
	log := logger.Nop()
	txManager := db.NewTransactionManager(gdb)

	recorded := &eventLog{}
	dispatcher := startDispatcher(t, recorded, sprint.EventTypeSprintStarted, sprint.EventTypeSprintCompleted)

	sprints := repository.NewSprintRepository(gdb, log)
	devTasks := repository.NewDevTaskRepository(gdb, log)

	admin := authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}
	create := sprintusecases.NewCreateSprintUseCase(sprints, log)
	start := sprintusecases.NewStartSprintUseCase(sprints, txManager, dispatcher, log)
	complete := sprintusecases.NewCompleteSprintUseCase(sprints, devTasks, txManager, dispatcher, log)

	first, err := create.Execute(ctx, sprintusecases.CreateSprintCommand{
		Actor:     admin,
		StartDate: time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-02", first.StartDate)

	second, err := create.Execute(ctx, sprintusecases.CreateSprintCommand{
		Actor:     admin,
		StartDate: time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	started, err := start.Execute(ctx, sprintusecases.StartSprintCommand{Actor: admin, SprintID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, "active", started.Status)

	_, err = start.Execute(ctx, sprintusecases.StartSprintCommand{Actor: admin, SprintID: second.ID})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	closed, err := complete.Execute(ctx, sprintusecases.CompleteSprintCommand{Actor: admin, SprintID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, "completed", closed.Sprint.Status)
	require.NotNil(t, closed.Sprint.Velocity)
	assert.Equal(t, 0, *closed.Sprint.Velocity)

	started, err = start.Execute(ctx, sprintusecases.StartSprintCommand{Actor: admin, SprintID: second.ID})
	require.NoError(t, err)
	assert.Equal(t, "active", started.Status)

	require.NoError(t, dispatcher.Stop())
	assert.ElementsMatch(t, []string{
		sprint.EventTypeSprintStarted,
		sprint.EventTypeSprintCompleted,
		sprint.EventTypeSprintStarted,
	}, recorded.snapshot())
}

func TestScenario_ReconvertTicket(t *testing.T) {
	gdb := openDB(t)
	ctx := context.Background()
	log := logger.Nop()
	txManager := db.NewTransactionManager(gdb)

	recorded := &eventLog{}
	dispatcher := startDispatcher(t, recorded, devtask.EventTypeDevTaskCreated)

	products := repository.NewProductRepository(gdb)
	tickets := repository.NewTicketRepository(gdb, log)
	comments := repository.NewTicketCommentRepository(gdb)
	devTasks := repository.NewDevTaskRepository(gdb, log)
	keys := repository.NewIssueKeyAllocator(gdb, products)

	crm, err := product.NewProduct("CRM", "Customer Relations")
	require.NoError(t, err)
	require.NoError(t, products.Create(ctx, crm))

	agent := authorization.Actor{UserID: 2, Role: authorization.RoleAgent}
	created, err := ticketusecases.NewCreateTicketUseCase(tickets, products, keys, txManager, dispatcher, log).
		Execute(ctx, ticketusecases.CreateTicketCommand{
			Actor:     agent,
			ProductID: crm.ID,
			Title:     "Invoice export times out",
		})
	require.NoError(t, err)

	convert := devtaskusecases.NewConvertTicketToDevTaskUseCase(
		tickets, comments, devTasks, products, keys, txManager, dispatcher,
		devtaskusecases.ConvertTicketOptions{}, log)
	cmd := devtaskusecases.ConvertTicketCommand{
		Actor:    agent,
		TicketID: created.ID,
		Roles:    devtaskusecases.RoleInput{ImplementorID: 7, DeveloperID: 8, TesterID: 9},
	}

	first, err := convert.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", first.Ticket.Status)
	assert.Greater(t, first.Ticket.Version, created.Version)

	// the ticket is already in progress and owned by the implementor
	second, err := convert.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, first.Ticket.Version, second.Ticket.Version)
	assert.NotEqual(t, first.DevTask.IssueKey, second.DevTask.IssueKey)

	stored, err := tickets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", stored.Status().String())
	require.NotNil(t, stored.AssigneeID())
	assert.Equal(t, uint(7), *stored.AssigneeID())
	assert.Equal(t, first.Ticket.Version, stored.Version())

	tasks, err := devTasks.ListByTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	notes, err := comments.ListByTicket(ctx, created.ID, true)
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	setParent := ticketusecases.NewSetParentUseCase(tickets, log)
	cleared, err := setParent.Execute(ctx, ticketusecases.SetParentCommand{Actor: agent, TicketID: created.ID})
	require.NoError(t, err)
	assert.Nil(t, cleared.ParentID)
	assert.Equal(t, stored.Version(), cleared.Version)

	require.NoError(t, dispatcher.Stop())
	assert.ElementsMatch(t, []string{devtask.EventTypeDevTaskCreated, devtask.EventTypeDevTaskCreated}, recorded.snapshot())
}

func TestScenario_VelocityFrozenAfterCompletion(t *testing.T) {
	gdb := openDB(t)
	ctx := context.Background()
	log := logger.Nop()
	txManager := db.NewTransactionManager(gdb)
	dispatcher := startDispatcher(t, &eventLog{})
	t.Cleanup(func() { _ = dispatcher.Stop() })

	products := repository.NewProductRepository(gdb)
	sprints := repository.NewSprintRepository(gdb, log)
	devTasks := repository.NewDevTaskRepository(gdb, log)

	crm, err := product.NewProduct("CRM", "Customer Relations")
	require.NoError(t, err)
	require.NoError(t, products.Create(ctx, crm))

	admin := authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}
	planned, err := sprintusecases.NewCreateSprintUseCase(sprints, log).Execute(ctx, sprintusecases.CreateSprintCommand{
		Actor:     admin,
		StartDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = sprintusecases.NewStartSprintUseCase(sprints, txManager, dispatcher, log).
		Execute(ctx, sprintusecases.StartSprintCommand{Actor: admin, SprintID: planned.ID})
	require.NoError(t, err)

	assign := devtaskusecases.NewAssignToSprintUseCase(devTasks, sprints, txManager, log)
	changeStatus := devtaskusecases.NewChangeDevTaskStatusUseCase(devTasks, dispatcher, log)
	updatePoints := devtaskusecases.NewUpdateStoryPointsUseCase(devTasks, log)

	var ids []uint
	for i, points := range []int{5, 3} {
		d, err := devtask.NewDevTask(devtask.NewDevTaskParams{
			ProductID:   crm.ID,
			Title:       "Sprint work",
			Roles:       devtask.Roles{ImplementorID: 7, DeveloperID: 8, TesterID: 9},
			StoryPoints: points,
			CreatedBy:   1,
		})
		require.NoError(t, err)
		require.NoError(t, d.SetIssueKey(fmt.Sprintf("CRM-T%03d", i+1)))
		require.NoError(t, devTasks.Create(ctx, d))
		_, err = assign.Execute(ctx, devtaskusecases.AssignToSprintCommand{Actor: admin, DevTaskID: d.ID(), SprintID: &planned.ID})
		require.NoError(t, err)
		ids = append(ids, d.ID())
	}
	done, open := ids[0], ids[1]

	_, err = changeStatus.Execute(ctx, devtaskusecases.ChangeDevTaskStatusCommand{Actor: admin, DevTaskID: done, Status: "done"})
	require.NoError(t, err)

	closed, err := sprintusecases.NewCompleteSprintUseCase(sprints, devTasks, txManager, dispatcher, log).
		Execute(ctx, sprintusecases.CompleteSprintCommand{Actor: admin, SprintID: planned.ID})
	require.NoError(t, err)
	require.NotNil(t, closed.Sprint.Velocity)
	assert.Equal(t, 5, *closed.Sprint.Velocity)
	assert.Equal(t, int64(1), closed.MovedToBacklog)

	_, err = updatePoints.Execute(ctx, devtaskusecases.UpdateStoryPointsCommand{Actor: admin, DevTaskID: done, StoryPoints: 13})
	require.NoError(t, err)
	_, err = changeStatus.Execute(ctx, devtaskusecases.ChangeDevTaskStatusCommand{Actor: admin, DevTaskID: done, Status: "testing"})
	require.NoError(t, err)

	reread, err := sprints.GetByID(ctx, planned.ID)
	require.NoError(t, err)
	require.NotNil(t, reread.Velocity())
	assert.Equal(t, 5, *reread.Velocity())

	kept, err := devTasks.GetByID(ctx, done)
	require.NoError(t, err)
	require.NotNil(t, kept.SprintID())
	assert.Equal(t, planned.ID, *kept.SprintID())

	backlog, err := devTasks.GetByID(ctx, open)
	require.NoError(t, err)
	assert.Nil(t, backlog.SprintID())
}
