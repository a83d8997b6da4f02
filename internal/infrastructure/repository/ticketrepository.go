package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/systech-labs/deskflow/internal/domain/ticket"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/mappers"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/models"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

// Update writes every mutable column when the stored version is the one the
// ticket was loaded with. An unchanged ticket is not written.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if !t.Changed() {
		return nil
	}
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]any{
			"title":                model.Title,
			"description":          model.Description,
			"status":               model.Status,
			"assignee_id":          model.AssigneeID,
			"client_priority":      model.ClientPriority,
			"internal_priority":    model.InternalPriority,
			"client_severity":      model.ClientSeverity,
			"internal_severity":    model.InternalSeverity,
			"labels":               model.Labels,
			"escalation_reason":    model.EscalationReason,
			"escalation_note":      model.EscalationNote,
			"pushed_to_systech_at": model.PushedToSystechAt,
			"parent_id":            model.ParentID,
			"resolution":           model.Resolution,
			"resolution_note":      model.ResolutionNote,
			"cancel_reason":        model.CancelReason,
			"resolved_at":          model.ResolvedAt,
			"closed_at":            model.ClosedAt,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update ticket", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ticket.ErrVersionConflict
	}

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByIssueKey(ctx context.Context, issueKey string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("issue_key = ?", issueKey).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetChildren(ctx context.Context, parentID uint) ([]*ticket.Ticket, error) {
	var list []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("parent_id = ?", parentID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list child tickets: %w", err)
	}

	return r.mapper.ToDomainList(list)
}

func (r *TicketRepository) HasChildren(ctx context.Context, id uint) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.TicketModel{}).Where("parent_id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count child tickets: %w", err)
	}
	return count > 0, nil
}

func (r *TicketRepository) ListEscalationQueue(ctx context.Context) ([]*ticket.Ticket, error) {
	var list []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("pushed_to_systech_at IS NOT NULL").
		Where("status NOT IN ?", []string{vo.StatusClosed.String(), vo.StatusCancelled.String()}).
		Order("pushed_to_systech_at ASC").
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list escalation queue: %w", err)
	}

	return r.mapper.ToDomainList(list)
}

// TicketCommentRepository stores comments, attachments and links; all three
// hang off a ticket and share its mapper.
type TicketCommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketCommentRepository(db *gorm.DB) *TicketCommentRepository {
	return &TicketCommentRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *TicketCommentRepository) ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Comment, error) {
	var list []models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID)
	if !includeInternal {
		tx = tx.Where("is_internal = ?", false)
	}

	if err := tx.Order("created_at ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	out := make([]*ticket.Comment, 0, len(list))
	for i := range list {
		c, err := r.mapper.CommentToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

type TicketAttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketAttachmentRepository(db *gorm.DB) *TicketAttachmentRepository {
	return &TicketAttachmentRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketAttachmentRepository) Create(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.AttachmentToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}
	a.SetID(model.ID)
	return nil
}

func (r *TicketAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var list []models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	out := make([]*ticket.Attachment, 0, len(list))
	for i := range list {
		out = append(out, r.mapper.AttachmentToDomain(&list[i]))
	}
	return out, nil
}

type TicketLinkRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketLinkRepository(db *gorm.DB) *TicketLinkRepository {
	return &TicketLinkRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

// Create relies on the unique (source, target, type) index; a repeated link
// surfaces as the driver's duplicate key error.
func (r *TicketLinkRepository) Create(ctx context.Context, l ticket.Link) error {
	model := r.mapper.LinkToModel(l)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket link: %w", err)
	}
	return nil
}

func (r *TicketLinkRepository) ListForTicket(ctx context.Context, ticketID uint) ([]ticket.Link, error) {
	var list []models.TicketLinkModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("source_id = ? OR target_id = ?", ticketID, ticketID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket links: %w", err)
	}

	out := make([]ticket.Link, 0, len(list))
	for i := range list {
		out = append(out, r.mapper.LinkToDomain(&list[i]))
	}
	return out, nil
}
