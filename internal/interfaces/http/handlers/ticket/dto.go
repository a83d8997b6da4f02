package ticket

import (
	"github.com/systech-labs/deskflow/internal/application/ticket/usecases"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
)

type CreateTicketRequest struct {
	ProductID        uint     `json:"product_id" binding:"required"`
	Title            string   `json:"title" binding:"required,max=255"`
	Description      string   `json:"description" binding:"max=20000"`
	Type             string   `json:"type" binding:"max=32"`
	ClientID         *uint    `json:"client_id,omitempty"`
	Priority         *int     `json:"priority,omitempty"`
	Severity         *int     `json:"severity,omitempty"`
	InternalPriority *int     `json:"internal_priority,omitempty"`
	InternalSeverity *int     `json:"internal_severity,omitempty"`
	Labels           []string `json:"labels,omitempty" binding:"max=20,dive,max=50"`
}

func (r *CreateTicketRequest) ToCommand(actor authorization.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:            actor,
		ProductID:        r.ProductID,
		Title:            r.Title,
		Description:      r.Description,
		Type:             r.Type,
		ClientID:         r.ClientID,
		Priority:         r.Priority,
		Severity:         r.Severity,
		InternalPriority: r.InternalPriority,
		InternalSeverity: r.InternalSeverity,
		Labels:           r.Labels,
	}
}

type ChangeStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	Reason         string `json:"reason" binding:"max=2000"`
	Resolution     string `json:"resolution" binding:"max=32"`
	ResolutionNote string `json:"resolution_note" binding:"max=5000"`
}

type ReassignToInternalRequest struct {
	Comment string `json:"comment" binding:"max=10000"`
}

type EscalateTicketRequest struct {
	Reason string `json:"reason" binding:"required,max=32"`
	Note   string `json:"note" binding:"max=2000"`
}

type AddCommentRequest struct {
	Body     string `json:"body" binding:"required,max=10000"`
	Internal bool   `json:"internal"`
}

type AddAttachmentRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"max=127"`
	SizeBytes   int64  `json:"size_bytes" binding:"gte=0"`
	URL         string `json:"url" binding:"required,url,max=2048"`
}

type LinkTicketsRequest struct {
	TargetID uint   `json:"target_id" binding:"required"`
	LinkType string `json:"link_type" binding:"required"`
}

// SetParentRequest clears the parent when ParentID is null.
type SetParentRequest struct {
	ParentID *uint `json:"parent_id"`
}
