package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

func TestCreateDevTaskUseCase_Execute(t *testing.T) {
	tasks := newMockDevTaskRepository()
	pub := &mockPublisher{}
	uc := NewCreateDevTaskUseCase(tasks, newMockProductRepository(), &mockKeyAllocator{}, &mockTransactor{}, pub, logger.Nop())

	result, err := uc.Execute(context.Background(), CreateDevTaskCommand{
		Actor:       agentActor,
		ProductID:   1,
		Title:       "Upgrade PDF renderer",
		Roles:       fullRoles,
		StoryPoints: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "CRM-T001", result.IssueKey)
	assert.Nil(t, result.SupportTicketID)
	assert.Equal(t, 5, result.StoryPoints)
	assert.Equal(t, []string{devtask.EventTypeDevTaskCreated}, pub.eventTypes())

	_, err = uc.Execute(context.Background(), CreateDevTaskCommand{Actor: agentActor, ProductID: 1, Title: "x"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CreateDevTaskCommand{Actor: agentActor, ProductID: 8, Title: "x", Roles: fullRoles})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestChangeDevTaskStatusUseCase_Execute(t *testing.T) {
	t.Run("blocked without reason warns", func(t *testing.T) {
		tasks := newMockDevTaskRepository(storedTask(3, devtask.StatusInProgress))
		pub := &mockPublisher{}
		uc := NewChangeDevTaskStatusUseCase(tasks, pub, logger.Nop())

		result, err := uc.Execute(context.Background(), ChangeDevTaskStatusCommand{Actor: agentActor, DevTaskID: 3, Status: "blocked"})
		require.NoError(t, err)
		assert.Equal(t, "blocked", result.DevTask.Status)
		assert.Equal(t, []string{devtask.WarningBlockedWithoutReason}, result.Warnings)
		assert.Equal(t, 1, tasks.updates)
		assert.Equal(t, []string{devtask.EventTypeDevTaskStatusChanged}, pub.eventTypes())
	})

	t.Run("done stamps completion", func(t *testing.T) {
		tasks := newMockDevTaskRepository(storedTask(3, devtask.StatusTesting))
		uc := NewChangeDevTaskStatusUseCase(tasks, &mockPublisher{}, logger.Nop())

		result, err := uc.Execute(context.Background(), ChangeDevTaskStatusCommand{Actor: agentActor, DevTaskID: 3, Status: "done"})
		require.NoError(t, err)
		assert.NotNil(t, result.DevTask.CompletedAt)
		assert.Empty(t, result.Warnings)
		assert.NotNil(t, result.Warnings)
	})

	t.Run("same status skips the write", func(t *testing.T) {
		tasks := newMockDevTaskRepository(storedTask(3, devtask.StatusReview))
		uc := NewChangeDevTaskStatusUseCase(tasks, &mockPublisher{}, logger.Nop())

		_, err := uc.Execute(context.Background(), ChangeDevTaskStatusCommand{Actor: agentActor, DevTaskID: 3, Status: "review"})
		require.NoError(t, err)
		assert.Zero(t, tasks.updates)
	})

	t.Run("unknown status", func(t *testing.T) {
		uc := NewChangeDevTaskStatusUseCase(newMockDevTaskRepository(storedTask(3, devtask.StatusTodo)), &mockPublisher{}, logger.Nop())
		_, err := uc.Execute(context.Background(), ChangeDevTaskStatusCommand{Actor: agentActor, DevTaskID: 3, Status: "shipped"})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("missing task", func(t *testing.T) {
		uc := NewChangeDevTaskStatusUseCase(newMockDevTaskRepository(), &mockPublisher{}, logger.Nop())
		_, err := uc.Execute(context.Background(), ChangeDevTaskStatusCommand{Actor: agentActor, DevTaskID: 3, Status: "done"})
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestUpdateStoryPointsUseCase_Execute(t *testing.T) {
	tasks := newMockDevTaskRepository(storedTask(3, devtask.StatusTodo))
	uc := NewUpdateStoryPointsUseCase(tasks, logger.Nop())

	result, err := uc.Execute(context.Background(), UpdateStoryPointsCommand{Actor: agentActor, DevTaskID: 3, StoryPoints: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, result.StoryPoints)
	assert.Equal(t, 1, tasks.updates)

	_, err = uc.Execute(context.Background(), UpdateStoryPointsCommand{Actor: agentActor, DevTaskID: 3, StoryPoints: -1})
	assert.True(t, errors.IsValidationError(err))
}

func TestAssignToSprintUseCase_Execute(t *testing.T) {
	sprints := &mockSprintRepository{sprints: map[uint]*sprint.Sprint{
		1: storedSprint(1, sprint.StatusActive),
		2: storedSprint(2, sprint.StatusCompleted),
	}}

	t.Run("binds to active sprint", func(t *testing.T) {
		tasks := newMockDevTaskRepository(storedTask(3, devtask.StatusTodo))
		uc := NewAssignToSprintUseCase(tasks, sprints, &mockTransactor{}, logger.Nop())

		result, err := uc.Execute(context.Background(), AssignToSprintCommand{Actor: agentActor, DevTaskID: 3, SprintID: uintPtr(1)})
		require.NoError(t, err)
		require.NotNil(t, result.SprintID)
		assert.Equal(t, uint(1), *result.SprintID)

		result, err = uc.Execute(context.Background(), AssignToSprintCommand{Actor: agentActor, DevTaskID: 3})
		require.NoError(t, err)
		assert.Nil(t, result.SprintID)
		assert.Equal(t, 2, tasks.updates)
	})

	t.Run("completed sprint is closed for tasks", func(t *testing.T) {
		tasks := newMockDevTaskRepository(storedTask(3, devtask.StatusTodo))
		uc := NewAssignToSprintUseCase(tasks, sprints, &mockTransactor{}, logger.Nop())

		_, err := uc.Execute(context.Background(), AssignToSprintCommand{Actor: agentActor, DevTaskID: 3, SprintID: uintPtr(2)})
		assert.True(t, errors.IsConflictError(err))
		assert.Zero(t, tasks.updates)
	})

	t.Run("unknown sprint", func(t *testing.T) {
		uc := NewAssignToSprintUseCase(newMockDevTaskRepository(storedTask(3, devtask.StatusTodo)), sprints, &mockTransactor{}, logger.Nop())
		_, err := uc.Execute(context.Background(), AssignToSprintCommand{Actor: agentActor, DevTaskID: 3, SprintID: uintPtr(9)})
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestGetConversionDefaultsUseCase_Execute(t *testing.T) {
	uc := NewGetConversionDefaultsUseCase(newMockProductRepository(), logger.Nop())

	result, err := uc.Execute(context.Background(), GetConversionDefaultsQuery{Actor: agentActor, ProductID: 1})
	require.NoError(t, err)
	require.NotNil(t, result.ImplementorID)
	assert.Equal(t, uint(10), *result.ImplementorID)

	_, err = uc.Execute(context.Background(), GetConversionDefaultsQuery{Actor: clientActor, ProductID: 1})
	assert.True(t, errors.IsForbiddenError(err))
}
