package ticket

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/application/ticket/usecases"
	"github.com/systech-labs/deskflow/internal/interfaces/http/handlers/common"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
	"github.com/systech-labs/deskflow/internal/shared/utils"
)

// UseCases groups the ticket executors the handler dispatches to.
type UseCases struct {
	Create           usecases.CreateTicketExecutor
	Get              usecases.GetTicketExecutor
	ChangeStatus     usecases.ChangeStatusExecutor
	ReassignInternal usecases.ReassignToInternalExecutor
	Escalate         usecases.EscalateTicketExecutor
	AddComment       usecases.AddCommentExecutor
	AddAttachment    usecases.AddAttachmentExecutor
	Link             usecases.LinkTicketsExecutor
	SetParent        usecases.SetParentExecutor
	AvailableActions usecases.GetAvailableActionsExecutor
	EscalationQueue  usecases.EscalationQueueExecutor
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

// CreateTicket handles POST /tickets
func (h *Handler) CreateTicket(c *gin.Context) {
	actor, ok := common.RequireActor(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.Create.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id. The segment may also be an issue key
// such as CRM-B001.
func (h *Handler) GetTicket(c *gin.Context) {
	actor, ok := common.RequireActor(c)
	if !ok {
		return
	}

	query := usecases.GetTicketQuery{Actor: actor}
	ref := strings.TrimSpace(c.Param("id"))
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil && id > 0 {
		query.TicketID = uint(id)
	} else if ref != "" && strings.Contains(ref, "-") {
		query.IssueKey = strings.ToUpper(ref)
	} else {
		utils.ErrorResponseWithError(c, errors.NewValidationError("ticket ID or issue key is required"))
		return
	}

	result, err := h.ucs.Get.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// ChangeStatus handles PATCH /tickets/:id/status
func (h *Handler) ChangeStatus(c *gin.Context) {
	actor, ticketID, ok := h.target(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.ChangeStatus.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID:       ticketID,
		Actor:          actor,
		Status:         req.Status,
		Reason:         req.Reason,
		Resolution:     req.Resolution,
		ResolutionNote: req.ResolutionNote,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Ticket status updated")
}

// ReassignToInternal handles POST /tickets/:id/reassign-internal
func (h *Handler) ReassignToInternal(c *gin.Context) {
	actor, ticketID, ok := h.target(c)
	if !ok {
		return
	}

	var req ReassignToInternalRequest
	if c.Request.ContentLength != 0 && !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.ReassignInternal.Execute(c.Request.Context(), usecases.ReassignToInternalCommand{
		TicketID: ticketID,
		Actor:    actor,
		Comment:  req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Ticket moved to internal review")
}

// Escalate handles POST /tickets/:id/escalate
func (h *Handler) Escalate(c *gin.Context) {
	actor, ticketID, ok := h.target(c)
	if !ok {
		return
	}

	var req EscalateTicketRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.Escalate.Execute(c.Request.Context(), usecases.EscalateTicketCommand{
		TicketID: ticketID,
		Actor:    actor,
		Reason:   req.Reason,
		Note:     req.Note,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result, "Ticket escalated")
}

// AddComment handles POST /tickets/:id/comments
func (h *Handler) AddComment(c *gin.Context) {
	actor, ticketID, ok := h.target(c)
	if !ok {
		return
	}

	var req AddCommentRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.AddComment.Execute(c.Request.Context(), usecases.AddCommentCommand{
		TicketID: ticketID,
		Actor:    actor,
		Body:     req.Body,
		Internal: req.Internal,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// AddAttachment handles POST /tickets/:id/attachments. Files are uploaded
// elsewhere; the body carries the stored file's metadata.
func (h *Handler) AddAttachment(c *gin.Context) {
	actor, ticketID, ok := h.target(c)
	if !ok {
		return
	}

	var req AddAttachmentRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.AddAttachment.Execute(c.Request.Context(), usecases.AddAttachmentCommand{
		TicketID:    ticketID,
		Actor:       actor,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		URL:         req.URL,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment added successfully")
}

// LinkTickets handles POST /tickets/:id/links
func (h *Handler) LinkTickets(c *gin.Context) {
	actor, ticketID, ok := h.target(c)
	if !ok {
		return
	}

	var req LinkTicketsRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.Link.Execute(c.Request.Context(), usecases.LinkTicketsCommand{
		Actor:    actor,
		SourceID: ticketID,
		TargetID: req.TargetID,
		LinkType: req.LinkType,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Tickets linked")
}

// SetParent handles PUT /tickets/:id/parent
func (h *Handler) SetParent(c *gin.Context) {
	actor, ticketID, ok := h.target(c)
	if !ok {
		return
	}

	var req SetParentRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.ucs.SetParent.Execute(c.Request.Context(), usecases.SetParentCommand{
		Actor:    actor,
		TicketID: ticketID,
		ParentID: req.ParentID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// AvailableActions handles GET /tickets/:id/actions
func (h *Handler) AvailableActions(c *gin.Context) {
	actor, ticketID, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.ucs.AvailableActions.Execute(c.Request.Context(), usecases.GetAvailableActionsQuery{
		Actor:    actor,
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// EscalationQueue handles GET /escalations
func (h *Handler) EscalationQueue(c *gin.Context) {
	actor, ok := common.RequireActor(c)
	if !ok {
		return
	}

	page := utils.ParsePagination(c)
	queue, err := h.ucs.EscalationQueue.Execute(c.Request.Context(), usecases.EscalationQueueQuery{
		Actor:    actor,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, queue.Items, queue.Total, page.Page, page.PageSize)
}

func (h *Handler) target(c *gin.Context) (actor authorization.Actor, ticketID uint, ok bool) {
	actor, ok = common.RequireActor(c)
	if !ok {
		return actor, 0, false
	}

	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return actor, 0, false
	}
	return actor, ticketID, true
}
