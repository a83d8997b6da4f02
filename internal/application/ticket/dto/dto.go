package dto

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/escalation"
	"github.com/systech-labs/deskflow/internal/domain/policy"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
)

var titleCaser = cases.Title(language.English)

// HumanLabel turns an enum value such as waiting_for_customer into
// "Waiting For Customer".
func HumanLabel(value string) string {
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}

type RatingDTO struct {
	Client    *int   `json:"client"`
	Internal  *int   `json:"internal"`
	Effective int    `json:"effective"`
	Label     string `json:"label"`
	Kind      string `json:"kind"`
}

func ToRatingDTO(r vo.Rating) RatingDTO {
	return RatingDTO{
		Client:    r.Client(),
		Internal:  r.Internal(),
		Effective: r.Effective(),
		Label:     vo.RatingLabel(r.Effective()),
		Kind:      string(r.Kind()),
	}
}

type TicketDTO struct {
	ID                uint            `json:"id"`
	IssueKey          string          `json:"issue_key"`
	ProductID         uint            `json:"product_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	DescriptionHTML   string          `json:"description_html,omitempty"`
	Type              string          `json:"type"`
	Status            string          `json:"status"`
	StatusLabel       string          `json:"status_label"`
	Channel           string          `json:"channel"`
	ClientID          *uint           `json:"client_id"`
	ReporterID        uint            `json:"reporter_id"`
	AssigneeID        *uint           `json:"assignee_id"`
	Priority          RatingDTO       `json:"priority"`
	Severity          RatingDTO       `json:"severity"`
	Labels            []string        `json:"labels"`
	Tags              []string        `json:"tags"`
	IsEscalated       bool            `json:"is_escalated"`
	CreatedBySystech  bool            `json:"created_by_systech"`
	EscalationReason  string          `json:"escalation_reason,omitempty"`
	EscalationNote    string          `json:"escalation_note,omitempty"`
	PushedToSystechAt *time.Time      `json:"pushed_to_systech_at"`
	SLA               *escalation.Age `json:"sla,omitempty"`
	ParentID          *uint           `json:"parent_id"`
	Resolution        string          `json:"resolution,omitempty"`
	ResolutionNote    string          `json:"resolution_note,omitempty"`
	CancelReason      string          `json:"cancel_reason,omitempty"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	ResolvedAt        *time.Time      `json:"resolved_at"`
	ClosedAt          *time.Time      `json:"closed_at"`
	AvailableActions  []string        `json:"available_actions"`
}

// ToTicketDTO maps a ticket together with the actions offered to the
// caller. now drives the SLA age of tickets pushed to internal.
func ToTicketDTO(t *ticket.Ticket, actions []policy.Action, now time.Time) *TicketDTO {
	if t == nil {
		return nil
	}

	d := &TicketDTO{
		ID:                t.ID(),
		IssueKey:          t.IssueKey(),
		ProductID:         t.ProductID(),
		Title:             t.Title(),
		Description:       t.Description(),
		Type:              t.Type().String(),
		Status:            t.Status().String(),
		StatusLabel:       HumanLabel(t.Status().String()),
		Channel:           string(t.Channel()),
		ClientID:          t.ClientID(),
		ReporterID:        t.ReporterID(),
		AssigneeID:        t.AssigneeID(),
		Priority:          ToRatingDTO(t.Priority()),
		Severity:          ToRatingDTO(t.Severity()),
		Labels:            t.Labels(),
		Tags:              t.FreeTags(),
		IsEscalated:       t.IsEscalated(),
		CreatedBySystech:  t.CreatedBySystech(),
		EscalationReason:  t.EscalationReason().String(),
		EscalationNote:    t.EscalationNote(),
		PushedToSystechAt: t.PushedToSystechAt(),
		ParentID:          t.ParentID(),
		Resolution:        t.Resolution(),
		ResolutionNote:    t.ResolutionNote(),
		CancelReason:      t.CancelReason(),
		Version:           t.Version(),
		CreatedAt:         t.CreatedAt(),
		UpdatedAt:         t.UpdatedAt(),
		ResolvedAt:        t.ResolvedAt(),
		ClosedAt:          t.ClosedAt(),
		AvailableActions:  ActionStrings(actions),
	}

	if pushed := t.PushedToSystechAt(); pushed != nil && !t.Status().IsTerminal() {
		age := escalation.SLAAge(*pushed, now)
		d.SLA = &age
	}
	return d
}

func ActionStrings(actions []policy.Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.String())
	}
	return out
}

type TicketSummaryDTO struct {
	ID       uint   `json:"id"`
	IssueKey string `json:"issue_key"`
	Title    string `json:"title"`
	Status   string `json:"status"`
}

func ToTicketSummaryDTO(t *ticket.Ticket) TicketSummaryDTO {
	return TicketSummaryDTO{
		ID:       t.ID(),
		IssueKey: t.IssueKey(),
		Title:    t.Title(),
		Status:   t.Status().String(),
	}
}

type CommentDTO struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	AuthorID   uint      `json:"author_id"`
	Body       string    `json:"body"`
	BodyHTML   string    `json:"body_html,omitempty"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToCommentDTO(c *ticket.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		AuthorID:   c.AuthorID(),
		Body:       c.Body(),
		IsInternal: c.IsInternal(),
		CreatedAt:  c.CreatedAt(),
	}
}

type AttachmentDTO struct {
	ID          uint      `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url"`
	UploadedBy  uint      `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToAttachmentDTO(a *ticket.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:          a.ID(),
		FileName:    a.FileName(),
		ContentType: a.ContentType(),
		SizeBytes:   a.SizeBytes(),
		URL:         a.URL(),
		UploadedBy:  a.UploadedBy(),
		CreatedAt:   a.CreatedAt(),
	}
}

type LinkDTO struct {
	SourceID uint   `json:"source_id"`
	TargetID uint   `json:"target_id"`
	LinkType string `json:"link_type"`
}

func ToLinkDTO(l ticket.Link) LinkDTO {
	return LinkDTO{SourceID: l.SourceID, TargetID: l.TargetID, LinkType: string(l.Type)}
}

type DevTaskSummaryDTO struct {
	ID          uint   `json:"id"`
	IssueKey    string `json:"issue_key"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	SprintID    *uint  `json:"sprint_id"`
}

func ToDevTaskSummaryDTO(d *devtask.DevTask) DevTaskSummaryDTO {
	return DevTaskSummaryDTO{
		ID:          d.ID(),
		IssueKey:    d.IssueKey(),
		Title:       d.Title(),
		Status:      d.Status().String(),
		StatusLabel: HumanLabel(d.Status().String()),
		SprintID:    d.SprintID(),
	}
}

// TicketView is a ticket with everything shown on its detail page.
type TicketView struct {
	Ticket      *TicketDTO          `json:"ticket"`
	Comments    []CommentDTO        `json:"comments"`
	Attachments []AttachmentDTO     `json:"attachments"`
	Parent      *TicketSummaryDTO   `json:"parent"`
	Children    []TicketSummaryDTO  `json:"children"`
	Links       []LinkDTO           `json:"links"`
	DevTasks    []DevTaskSummaryDTO `json:"dev_tasks"`
}

type EscalationItemDTO struct {
	ID                uint           `json:"id"`
	IssueKey          string         `json:"issue_key"`
	Title             string         `json:"title"`
	Status            string         `json:"status"`
	IsEscalated       bool           `json:"is_escalated"`
	EscalationReason  string         `json:"escalation_reason,omitempty"`
	Priority          int            `json:"priority"`
	PushedToSystechAt time.Time      `json:"pushed_to_systech_at"`
	SLA               escalation.Age `json:"sla"`
}

// EscalationQueueDTO is one page of the queue. Total counts the whole queue.
type EscalationQueueDTO struct {
	Items []EscalationItemDTO
	Total int64
}
