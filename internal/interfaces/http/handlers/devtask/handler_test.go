package devtask

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systech-labs/deskflow/internal/application/devtask/dto"
	"github.com/systech-labs/deskflow/internal/application/devtask/usecases"
	"github.com/systech-labs/deskflow/internal/interfaces/http/handlers/testutil"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type mockExec[C any, R any] struct {
	got    C
	calls  int
	result R
	err    error
}

func (m *mockExec[C, R]) Execute(_ context.Context, cmd C) (R, error) {
	m.got = cmd
	m.calls++
	return m.result, m.err
}

func TestHandler_CreateDevTask(t *testing.T) {
	uc := &mockExec[usecases.CreateDevTaskCommand, *dto.DevTaskDTO]{
		result: &dto.DevTaskDTO{ID: 1, IssueKey: "CRM-T001", Status: "backlog"},
	}
	h := NewHandler(UseCases{Create: uc}, logger.Nop())

	moduleID := uint(4)
	c, w := testutil.NewTestContext(http.MethodPost, "/dev-tasks", CreateDevTaskRequest{
		ProductID: 1,
		WorkFields: WorkFields{
			Title:              "Paginate invoice export",
			DeveloperID:        11,
			UseProductDefaults: true,
			ModuleID:           &moduleID,
			StoryPoints:        5,
		},
	})
	testutil.SetActor(c, testutil.Agent)

	h.CreateDevTask(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(11), uc.got.Roles.DeveloperID)
	assert.True(t, uc.got.UseProductDefaults)
	require.NotNil(t, uc.got.Structure.ModuleID)
	assert.Equal(t, uint(4), *uc.got.Structure.ModuleID)
	assert.Equal(t, 5, uc.got.StoryPoints)

	var got dto.DevTaskDTO
	require.NoError(t, testutil.ParseData(w, &got))
	assert.Equal(t, "CRM-T001", got.IssueKey)
}

func TestHandler_CreateDevTask_ClientForbidden(t *testing.T) {
	uc := &mockExec[usecases.CreateDevTaskCommand, *dto.DevTaskDTO]{err: errors.NewForbiddenError("internal access required")}
	h := NewHandler(UseCases{Create: uc}, logger.Nop())

	c, w := testutil.NewTestContext(http.MethodPost, "/dev-tasks", CreateDevTaskRequest{
		ProductID:  1,
		WorkFields: WorkFields{Title: "x"},
	})
	testutil.SetActor(c, testutil.Client)

	h.CreateDevTask(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_CreateDevTask_NegativePoints(t *testing.T) {
	uc := &mockExec[usecases.CreateDevTaskCommand, *dto.DevTaskDTO]{}
	h := NewHandler(UseCases{Create: uc}, logger.Nop())

	c, w := testutil.NewTestContext(http.MethodPost, "/dev-tasks", map[string]any{
		"product_id":   1,
		"title":        "x",
		"story_points": -2,
	})
	testutil.SetActor(c, testutil.Agent)

	h.CreateDevTask(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, uc.calls)
}

func TestHandler_ConvertTicket(t *testing.T) {
	uc := &mockExec[usecases.ConvertTicketCommand, *dto.ConversionResult]{
		result: &dto.ConversionResult{DevTask: &dto.DevTaskDTO{ID: 3, IssueKey: "CRM-T003"}},
	}
	h := NewHandler(UseCases{Convert: uc}, logger.Nop())

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/8/dev-tasks", ConvertTicketRequest{
		WorkFields: WorkFields{UseProductDefaults: true},
	})
	testutil.SetActor(c, testutil.Agent)
	testutil.SetURLParam(c, "id", "8")

	h.ConvertTicket(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(8), uc.got.TicketID)
	assert.True(t, uc.got.UseProductDefaults)
	assert.Empty(t, uc.got.Title)

	// Without a body every field falls back to the ticket.
	c, w = testutil.NewTestContext(http.MethodPost, "/tickets/8/dev-tasks", nil)
	testutil.SetActor(c, testutil.Agent)
	testutil.SetURLParam(c, "id", "8")

	h.ConvertTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, uc.got.UseProductDefaults)
}

func TestHandler_ConvertTicket_Duplicate(t *testing.T) {
	uc := &mockExec[usecases.ConvertTicketCommand, *dto.ConversionResult]{
		err: errors.NewConflictError("ticket already has an open dev task"),
	}
	h := NewHandler(UseCases{Convert: uc}, logger.Nop())

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/8/dev-tasks", nil)
	testutil.SetActor(c, testutil.Agent)
	testutil.SetURLParam(c, "id", "8")

	h.ConvertTicket(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_ChangeStatus(t *testing.T) {
	uc := &mockExec[usecases.ChangeDevTaskStatusCommand, *dto.StatusChangeResult]{
		result: &dto.StatusChangeResult{
			DevTask:  &dto.DevTaskDTO{ID: 2, Status: "in_progress"},
			Warnings: []string{"no developer assigned"},
		},
	}
	h := NewHandler(UseCases{ChangeStatus: uc}, logger.Nop())

	c, w := testutil.NewTestContext(http.MethodPatch, "/dev-tasks/2/status", ChangeStatusRequest{Status: "in_progress"})
	testutil.SetActor(c, testutil.Agent)
	testutil.SetURLParam(c, "id", "2")

	h.ChangeStatus(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(2), uc.got.DevTaskID)

	var got dto.StatusChangeResult
	require.NoError(t, testutil.ParseData(w, &got))
	assert.Equal(t, []string{"no developer assigned"}, got.Warnings)
}

func TestHandler_UpdateStoryPoints(t *testing.T) {
	uc := &mockExec[usecases.UpdateStoryPointsCommand, *dto.DevTaskDTO]{result: &dto.DevTaskDTO{ID: 2}}
	h := NewHandler(UseCases{UpdateStoryPoints: uc}, logger.Nop())

	tests := []struct {
		name     string
		body     any
		wantCode int
		want     int
	}{
		{"set", map[string]any{"story_points": 8}, http.StatusOK, 8},
		{"zero is allowed", map[string]any{"story_points": 0}, http.StatusOK, 0},
		{"missing", map[string]any{}, http.StatusBadRequest, 0},
		{"negative", map[string]any{"story_points": -1}, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc.got = usecases.UpdateStoryPointsCommand{}
			c, w := testutil.NewTestContext(http.MethodPatch, "/dev-tasks/2/story-points", tt.body)
			testutil.SetActor(c, testutil.Agent)
			testutil.SetURLParam(c, "id", "2")

			h.UpdateStoryPoints(c)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.want, uc.got.StoryPoints)
		})
	}
}

func TestHandler_AssignToSprint(t *testing.T) {
	uc := &mockExec[usecases.AssignToSprintCommand, *dto.DevTaskDTO]{result: &dto.DevTaskDTO{ID: 2}}
	h := NewHandler(UseCases{AssignToSprint: uc}, logger.Nop())

	sprintID := uint(6)
	c, w := testutil.NewTestContext(http.MethodPut, "/dev-tasks/2/sprint", AssignSprintRequest{SprintID: &sprintID})
	testutil.SetActor(c, testutil.Admin)
	testutil.SetURLParam(c, "id", "2")

	h.AssignToSprint(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got.SprintID)
	assert.Equal(t, uint(6), *uc.got.SprintID)

	c, w = testutil.NewTestContext(http.MethodPut, "/dev-tasks/2/sprint", map[string]any{"sprint_id": nil})
	testutil.SetActor(c, testutil.Admin)
	testutil.SetURLParam(c, "id", "2")

	h.AssignToSprint(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, uc.got.SprintID)
}

func TestHandler_ProductDefaults(t *testing.T) {
	devID := uint(11)
	uc := &mockExec[usecases.GetConversionDefaultsQuery, *dto.ConversionDefaults]{
		result: &dto.ConversionDefaults{ProductID: 1, DeveloperID: &devID},
	}
	h := NewHandler(UseCases{Defaults: uc}, logger.Nop())

	c, w := testutil.NewTestContext(http.MethodGet, "/products/1/defaults", nil)
	testutil.SetActor(c, testutil.Agent)
	testutil.SetURLParam(c, "id", "1")

	h.ProductDefaults(c)

	require.Equal(t, http.StatusOK, w.Code)
	var got dto.ConversionDefaults
	require.NoError(t, testutil.ParseData(w, &got))
	require.NotNil(t, got.DeveloperID)
	assert.Equal(t, uint(11), *got.DeveloperID)
	assert.Nil(t, got.TesterID)
}
