package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/mappers"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/models"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type DevTaskRepository struct {
	db     *gorm.DB
	mapper mappers.DevTaskMapper
	logger logger.Interface
}

func NewDevTaskRepository(db *gorm.DB, logger logger.Interface) *DevTaskRepository {
	return &DevTaskRepository{
		db:     db,
		mapper: mappers.NewDevTaskMapper(),
		logger: logger,
	}
}

func (r *DevTaskRepository) Create(ctx context.Context, d *devtask.DevTask) error {
	model := r.mapper.ToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save dev task: %w", err)
	}
	return d.SetID(model.ID)
}

func (r *DevTaskRepository) Update(ctx context.Context, d *devtask.DevTask) error {
	model := r.mapper.ToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.DevTaskModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]any{
			"title":          model.Title,
			"description":    model.Description,
			"status":         model.Status,
			"implementor_id": model.ImplementorID,
			"developer_id":   model.DeveloperID,
			"tester_id":      model.TesterID,
			"story_points":   model.StoryPoints,
			"sprint_id":      model.SprintID,
			"blocked_reason": model.BlockedReason,
			"completed_at":   model.CompletedAt,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update dev task", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update dev task: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return devtask.ErrVersionConflict
	}
	return nil
}

func (r *DevTaskRepository) GetByID(ctx context.Context, id uint) (*devtask.DevTask, error) {
	var model models.DevTaskModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, devtask.ErrDevTaskNotFound
		}
		return nil, fmt.Errorf("failed to find dev task: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *DevTaskRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*devtask.DevTask, error) {
	return r.list(ctx, "support_ticket_id = ?", ticketID)
}

func (r *DevTaskRepository) ListBySprint(ctx context.Context, sprintID uint) ([]*devtask.DevTask, error) {
	return r.list(ctx, "sprint_id = ?", sprintID)
}

func (r *DevTaskRepository) list(ctx context.Context, query string, arg uint) ([]*devtask.DevTask, error) {
	var list []models.DevTaskModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, arg).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list dev tasks: %w", err)
	}
	return r.mapper.ToDomainList(list)
}

func (r *DevTaskRepository) HasOpenForTicket(ctx context.Context, ticketID uint) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.DevTaskModel{}).
		Where("support_ticket_id = ? AND status <> ?", ticketID, devtask.StatusDone.String()).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count open dev tasks: %w", err)
	}
	return count > 0, nil
}

func (r *DevTaskRepository) LockBySprint(ctx context.Context, sprintID uint) error {
	var ids []uint
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.DevTaskModel{}).
		Scopes(db.ForUpdate()).
		Where("sprint_id = ?", sprintID).
		Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to lock sprint dev tasks: %w", err)
	}
	return nil
}

func (r *DevTaskRepository) SumDonePoints(ctx context.Context, sprintID uint) (int, error) {
	var total int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.DevTaskModel{}).
		Select("COALESCE(SUM(story_points), 0)").
		Where("sprint_id = ? AND status = ?", sprintID, devtask.StatusDone.String()).
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum done story points: %w", err)
	}
	return int(total), nil
}

// UnbindIncomplete is a bulk update; versions are bumped so a task loaded
// before the sprint closed cannot write its old sprint back.
func (r *DevTaskRepository) UnbindIncomplete(ctx context.Context, sprintID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.DevTaskModel{}).
		Where("sprint_id = ? AND status <> ?", sprintID, devtask.StatusDone.String()).
		Updates(map[string]any{
			"sprint_id":  nil,
			"version":    gorm.Expr("version + 1"),
			"updated_at": biztime.NowUTC().UnixMilli(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to move incomplete dev tasks to backlog", "sprint_id", sprintID, "error", result.Error)
		return 0, fmt.Errorf("failed to unbind incomplete dev tasks: %w", result.Error)
	}
	return result.RowsAffected, nil
}
