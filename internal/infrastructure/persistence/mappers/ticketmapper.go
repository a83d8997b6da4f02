package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/systech-labs/deskflow/internal/domain/ticket"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) (*models.TicketModel, error)

	// ToDomain converts a ticket persistence model to a domain entity.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	// ToDomainList converts persistence models in order, failing on the first bad row.
	ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error)

	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)

	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) *ticket.Attachment

	LinkToModel(l ticket.Link) *models.TicketLinkModel
	LinkToDomain(model *models.TicketLinkModel) ticket.Link
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) (*models.TicketModel, error) {
	labels, err := json.Marshal(t.Labels())
	if err != nil {
		return nil, fmt.Errorf("failed to encode labels: %w", err)
	}

	model := &models.TicketModel{
		ID:                t.ID(),
		IssueKey:          t.IssueKey(),
		ProductID:         t.ProductID(),
		Title:             t.Title(),
		Description:       t.Description(),
		Type:              t.Type().String(),
		Status:            t.Status().String(),
		Channel:           string(t.Channel()),
		ClientID:          t.ClientID(),
		ReporterID:        t.ReporterID(),
		AssigneeID:        t.AssigneeID(),
		ClientPriority:    t.Priority().Client(),
		InternalPriority:  t.Priority().Internal(),
		ClientSeverity:    t.Severity().Client(),
		InternalSeverity:  t.Severity().Internal(),
		Labels:            datatypes.JSON(labels),
		EscalationReason:  string(t.EscalationReason()),
		EscalationNote:    t.EscalationNote(),
		PushedToSystechAt: toMilliPtr(t.PushedToSystechAt()),
		ParentID:          t.ParentID(),
		Resolution:        t.Resolution(),
		ResolutionNote:    t.ResolutionNote(),
		CancelReason:      t.CancelReason(),
		Version:           t.Version(),
		CreatedAt:         t.CreatedAt().UnixMilli(),
		UpdatedAt:         t.UpdatedAt().UnixMilli(),
		ResolvedAt:        toMilliPtr(t.ResolvedAt()),
		ClosedAt:          toMilliPtr(t.ClosedAt()),
	}

	return model, nil
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	var labels []string
	if len(model.Labels) > 0 {
		if err := json.Unmarshal(model.Labels, &labels); err != nil {
			return nil, fmt.Errorf("failed to decode labels of ticket %d: %w", model.ID, err)
		}
	}

	t, err := ticket.ReconstructTicket(ticket.ReconstructParams{
		ID:                model.ID,
		IssueKey:          model.IssueKey,
		ProductID:         model.ProductID,
		Title:             model.Title,
		Description:       model.Description,
		Type:              vo.TicketType(model.Type),
		Status:            vo.TicketStatus(model.Status),
		Channel:           vo.Channel(model.Channel),
		ClientID:          model.ClientID,
		ReporterID:        model.ReporterID,
		AssigneeID:        model.AssigneeID,
		Priority:          vo.ReconstructRating(model.ClientPriority, model.InternalPriority),
		Severity:          vo.ReconstructRating(model.ClientSeverity, model.InternalSeverity),
		Labels:            labels,
		EscalationReason:  vo.EscalationReason(model.EscalationReason),
		EscalationNote:    model.EscalationNote,
		PushedToSystechAt: fromMilliPtr(model.PushedToSystechAt),
		ParentID:          model.ParentID,
		Resolution:        model.Resolution,
		ResolutionNote:    model.ResolutionNote,
		CancelReason:      model.CancelReason,
		Version:           model.Version,
		CreatedAt:         fromMilli(model.CreatedAt),
		UpdatedAt:         fromMilli(model.UpdatedAt),
		ResolvedAt:        fromMilliPtr(model.ResolvedAt),
		ClosedAt:          fromMilliPtr(model.ClosedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket %d: %w", model.ID, err)
	}

	return t, nil
}

func (m *TicketMapperImpl) ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error) {
	out := make([]*ticket.Ticket, 0, len(list))
	for i := range list {
		t, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		AuthorID:   c.AuthorID(),
		Body:       c.Body(),
		IsInternal: c.IsInternal(),
		CreatedAt:  c.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.AuthorID,
		model.Body,
		model.IsInternal,
		fromMilli(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:          a.ID(),
		TicketID:    a.TicketID(),
		FileName:    a.FileName(),
		ContentType: a.ContentType(),
		SizeBytes:   a.SizeBytes(),
		URL:         a.URL(),
		UploadedBy:  a.UploadedBy(),
		CreatedAt:   a.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) *ticket.Attachment {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.FileName,
		model.ContentType,
		model.SizeBytes,
		model.URL,
		model.UploadedBy,
		fromMilli(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) LinkToModel(l ticket.Link) *models.TicketLinkModel {
	return &models.TicketLinkModel{
		SourceID: l.SourceID,
		TargetID: l.TargetID,
		LinkType: string(l.Type),
	}
}

func (m *TicketMapperImpl) LinkToDomain(model *models.TicketLinkModel) ticket.Link {
	return ticket.Link{
		SourceID: model.SourceID,
		TargetID: model.TargetID,
		Type:     vo.LinkType(model.LinkType),
	}
}
