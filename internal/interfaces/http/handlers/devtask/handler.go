package devtask

import (
	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/application/devtask/usecases"
	"github.com/systech-labs/deskflow/internal/interfaces/http/handlers/common"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/logger"
	"github.com/systech-labs/deskflow/internal/shared/utils"
)

type UseCases struct {
	Create            usecases.CreateDevTaskExecutor
	Convert           usecases.ConvertTicketExecutor
	ChangeStatus      usecases.ChangeDevTaskStatusExecutor
	UpdateStoryPoints usecases.UpdateStoryPointsExecutor
	AssignToSprint    usecases.AssignToSprintExecutor
	Defaults          usecases.GetConversionDefaultsExecutor
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

// CreateDevTask handles POST /dev-tasks
func (h *Handler) CreateDevTask(c *gin.Context) {
	actor, ok := common.RequireActor(c)
	if !ok {
		return
	}

	var req CreateDevTaskRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.Create.Execute(c.Request.Context(), usecases.CreateDevTaskCommand{
		Actor:              actor,
		ProductID:          req.ProductID,
		Title:              req.Title,
		Description:        req.Description,
		Type:               req.Type,
		Roles:              req.roles(),
		UseProductDefaults: req.UseProductDefaults,
		Structure:          req.structure(),
		StoryPoints:        req.StoryPoints,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Dev task created successfully")
}

// ConvertTicket handles POST /tickets/:id/dev-tasks
func (h *Handler) ConvertTicket(c *gin.Context) {
	actor, ok := common.RequireActor(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ConvertTicketRequest
	if c.Request.ContentLength != 0 && !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.Convert.Execute(c.Request.Context(), usecases.ConvertTicketCommand{
		Actor:              actor,
		TicketID:           ticketID,
		Title:              req.Title,
		Description:        req.Description,
		Type:               req.Type,
		Roles:              req.roles(),
		UseProductDefaults: req.UseProductDefaults,
		Structure:          req.structure(),
		StoryPoints:        req.StoryPoints,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("ticket converted to dev task", "ticket_id", ticketID, "issue_key", result.DevTask.IssueKey)
	utils.CreatedResponse(c, result, "Ticket converted to dev task")
}

// ChangeStatus handles PATCH /dev-tasks/:id/status
func (h *Handler) ChangeStatus(c *gin.Context) {
	actor, taskID, ok := target(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.ChangeStatus.Execute(c.Request.Context(), usecases.ChangeDevTaskStatusCommand{
		Actor:         actor,
		DevTaskID:     taskID,
		Status:        req.Status,
		BlockedReason: req.BlockedReason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Dev task status updated")
}

// UpdateStoryPoints handles PATCH /dev-tasks/:id/story-points
func (h *Handler) UpdateStoryPoints(c *gin.Context) {
	actor, taskID, ok := target(c)
	if !ok {
		return
	}

	var req UpdateStoryPointsRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.UpdateStoryPoints.Execute(c.Request.Context(), usecases.UpdateStoryPointsCommand{
		Actor:       actor,
		DevTaskID:   taskID,
		StoryPoints: *req.StoryPoints,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// AssignToSprint handles PUT /dev-tasks/:id/sprint
func (h *Handler) AssignToSprint(c *gin.Context) {
	actor, taskID, ok := target(c)
	if !ok {
		return
	}

	var req AssignSprintRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.AssignToSprint.Execute(c.Request.Context(), usecases.AssignToSprintCommand{
		Actor:     actor,
		DevTaskID: taskID,
		SprintID:  req.SprintID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// ProductDefaults handles GET /products/:id/defaults
func (h *Handler) ProductDefaults(c *gin.Context) {
	actor, ok := common.RequireActor(c)
	if !ok {
		return
	}

	productID, err := utils.ParseIDParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ucs.Defaults.Execute(c.Request.Context(), usecases.GetConversionDefaultsQuery{
		Actor:     actor,
		ProductID: productID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func target(c *gin.Context) (authorization.Actor, uint, bool) {
	actor, ok := common.RequireActor(c)
	if !ok {
		return actor, 0, false
	}

	taskID, err := utils.ParseIDParam(c, "id", "dev task")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return actor, 0, false
	}
	return actor, taskID, true
}
