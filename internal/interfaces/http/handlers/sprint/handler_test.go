package sprint

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systech-labs/deskflow/internal/application/sprint/dto"
	"github.com/systech-labs/deskflow/internal/application/sprint/usecases"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
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

func TestHandler_CreateSprint(t *testing.T) {
	uc := &mockExec[usecases.CreateSprintCommand, *dto.SprintDTO]{
		result: &dto.SprintDTO{ID: 1, Name: "Sprint 2026-02-02", StartDate: "2026-02-02", EndDate: "2026-02-15", Status: "planned"},
	}
	h := NewHandler(UseCases{Create: uc}, logger.Nop())

	c, w := testutil.NewTestContext(http.MethodPost, "/sprints", CreateSprintRequest{StartDate: "2026-02-02", Goal: "exports"})
	testutil.SetActor(c, testutil.Admin)

	h.CreateSprint(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC), uc.got.StartDate)
	assert.Equal(t, "exports", uc.got.Goal)

	var got dto.SprintDTO
	require.NoError(t, testutil.ParseData(w, &got))
	assert.Equal(t, "2026-02-15", got.EndDate)
}

func TestHandler_CreateSprint_BadDate(t *testing.T) {
	uc := &mockExec[usecases.CreateSprintCommand, *dto.SprintDTO]{}
	h := NewHandler(UseCases{Create: uc}, logger.Nop())

	for _, date := range []string{"", "02/02/2026", "2026-02-30"} {
		c, w := testutil.NewTestContext(http.MethodPost, "/sprints", CreateSprintRequest{StartDate: date})
		testutil.SetActor(c, testutil.Admin)

		h.CreateSprint(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, date)
	}
	assert.Zero(t, uc.calls)
}

func TestHandler_StartSprint_SecondActive(t *testing.T) {
	uc := &mockExec[usecases.StartSprintCommand, *dto.SprintDTO]{
		err: errors.NewConflictError("another sprint is already active"),
	}
	h := NewHandler(UseCases{Start: uc}, logger.Nop())

	c, w := testutil.NewTestContext(http.MethodPost, "/sprints/2/start", nil)
	testutil.SetActor(c, testutil.Admin)
	testutil.SetURLParam(c, "id", "2")

	h.StartSprint(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, uint(2), uc.got.SprintID)
}

func TestHandler_CompleteAndCancel(t *testing.T) {
	velocity := 13
	complete := &mockExec[usecases.CompleteSprintCommand, *dto.CloseResult]{
		result: &dto.CloseResult{Sprint: &dto.SprintDTO{ID: 1, Status: "completed", Velocity: &velocity}, MovedToBacklog: 2},
	}
	cancel := &mockExec[usecases.CancelSprintCommand, *dto.CloseResult]{
		result: &dto.CloseResult{Sprint: &dto.SprintDTO{ID: 3, Status: "cancelled"}},
	}
	h := NewHandler(UseCases{Complete: complete, Cancel: cancel}, logger.Nop())

	c, w := testutil.NewTestContext(http.MethodPost, "/sprints/1/complete", nil)
	testutil.SetActor(c, testutil.Admin)
	testutil.SetURLParam(c, "id", "1")
	h.CompleteSprint(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, complete.got.MoveIncompleteTo)
	var closed dto.CloseResult
	require.NoError(t, testutil.ParseData(w, &closed))
	assert.Equal(t, int64(2), closed.MovedToBacklog)
	assert.Equal(t, 13, *closed.Sprint.Velocity)

	c, w = testutil.NewTestContext(http.MethodPost, "/sprints/1/complete", CompleteSprintRequest{MoveIncompleteTo: "backlog"})
	testutil.SetActor(c, testutil.Admin)
	testutil.SetURLParam(c, "id", "1")
	h.CompleteSprint(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "backlog", complete.got.MoveIncompleteTo)

	c, w = testutil.NewTestContext(http.MethodPost, "/sprints/3/cancel", nil)
	testutil.SetActor(c, testutil.Admin)
	testutil.SetURLParam(c, "id", "3")
	h.CancelSprint(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), cancel.got.SprintID)
}

func TestHandler_VelocityTrend(t *testing.T) {
	uc := &mockExec[usecases.VelocityTrendQuery, *sprint.VelocityReport]{
		result: &sprint.VelocityReport{Average: 10.5, Max: 13},
	}
	h := NewHandler(UseCases{Velocity: uc}, logger.Nop())

	c, w := testutil.NewTestContext(http.MethodGet, "/sprints/velocity", nil)
	testutil.SetActor(c, testutil.Agent)

	h.VelocityTrend(c)

	require.Equal(t, http.StatusOK, w.Code)
	var got sprint.VelocityReport
	require.NoError(t, testutil.ParseData(w, &got))
	assert.Equal(t, 13, got.Max)
	assert.Equal(t, testutil.Agent, uc.got.Actor)
}
