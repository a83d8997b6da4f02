package sprint

import (
	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/application/sprint/usecases"
	"github.com/systech-labs/deskflow/internal/interfaces/http/handlers/common"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
	"github.com/systech-labs/deskflow/internal/shared/utils"
)

type CreateSprintRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	Goal      string `json:"goal" binding:"max=2000"`
}

type CompleteSprintRequest struct {
	MoveIncompleteTo string `json:"move_incomplete_to"`
}

type UseCases struct {
	Create   usecases.CreateSprintExecutor
	Start    usecases.StartSprintExecutor
	Complete usecases.CompleteSprintExecutor
	Cancel   usecases.CancelSprintExecutor
	Velocity usecases.VelocityTrendExecutor
}

type Handler struct {
	ucs    UseCases
	logger logger.Interface
}

func NewHandler(ucs UseCases, logger logger.Interface) *Handler {
	return &Handler{
		ucs:    ucs,
		logger: logger,
	}
}

// CreateSprint handles POST /sprints
func (h *Handler) CreateSprint(c *gin.Context) {
	actor, ok := common.RequireActor(c)
	if !ok {
		return
	}

	var req CreateSprintRequest
	if !common.BindJSON(c, &req) {
		return
	}

	startDate, err := biztime.ParseDate(req.StartDate)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("start_date must be YYYY-MM-DD", req.StartDate))
		return
	}

	result, err := h.ucs.Create.Execute(c.Request.Context(), usecases.CreateSprintCommand{
		Actor:     actor,
		StartDate: startDate,
		Goal:      req.Goal,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Sprint created successfully")
}

// StartSprint handles POST /sprints/:id/start
func (h *Handler) StartSprint(c *gin.Context) {
	actor, sprintID, ok := target(c)
	if !ok {
		return
	}

	result, err := h.ucs.Start.Execute(c.Request.Context(), usecases.StartSprintCommand{
		Actor:    actor,
		SprintID: sprintID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Sprint started")
}

// CompleteSprint handles POST /sprints/:id/complete
func (h *Handler) CompleteSprint(c *gin.Context) {
	actor, sprintID, ok := target(c)
	if !ok {
		return
	}

	var req CompleteSprintRequest
	if c.Request.ContentLength != 0 && !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.Complete.Execute(c.Request.Context(), usecases.CompleteSprintCommand{
		Actor:            actor,
		SprintID:         sprintID,
		MoveIncompleteTo: req.MoveIncompleteTo,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Sprint completed")
}

// CancelSprint handles POST /sprints/:id/cancel
func (h *Handler) CancelSprint(c *gin.Context) {
	actor, sprintID, ok := target(c)
	if !ok {
		return
	}

	result, err := h.ucs.Cancel.Execute(c.Request.Context(), usecases.CancelSprintCommand{
		Actor:    actor,
		SprintID: sprintID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Sprint cancelled")
}

// VelocityTrend handles GET /sprints/velocity
func (h *Handler) VelocityTrend(c *gin.Context) {
	actor, ok := common.RequireActor(c)
	if !ok {
		return
	}

	report, err := h.ucs.Velocity.Execute(c.Request.Context(), usecases.VelocityTrendQuery{Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, report)
}

func target(c *gin.Context) (authorization.Actor, uint, bool) {
	actor, ok := common.RequireActor(c)
	if !ok {
		return actor, 0, false
	}

	sprintID, err := utils.ParseIDParam(c, "id", "sprint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return actor, 0, false
	}
	return actor, sprintID, true
}
