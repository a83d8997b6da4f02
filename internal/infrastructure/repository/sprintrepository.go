package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/mappers"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/models"
	"github.com/systech-labs/deskflow/internal/shared/db"
	apperrors "github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type SprintRepository struct {
	db     *gorm.DB
	mapper mappers.SprintMapper
	logger logger.Interface
}

func NewSprintRepository(db *gorm.DB, logger logger.Interface) *SprintRepository {
	return &SprintRepository{
		db:     db,
		mapper: mappers.NewSprintMapper(),
		logger: logger,
	}
}

func (r *SprintRepository) Create(ctx context.Context, s *sprint.Sprint) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save sprint: %w", err)
	}
	return s.SetID(model.ID)
}

// Update checks the version the sprint was loaded with. A second active
// sprint trips the unique active_slot index and is reported as
// ErrActiveSprintExists.
func (r *SprintRepository) Update(ctx context.Context, s *sprint.Sprint) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.SprintModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]any{
			"goal":         model.Goal,
			"status":       model.Status,
			"velocity":     model.Velocity,
			"active_slot":  model.ActiveSlot,
			"started_at":   model.StartedAt,
			"completed_at": model.CompletedAt,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return sprint.ErrActiveSprintExists
		}
		r.logger.Errorw("failed to update sprint", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update sprint: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return sprint.ErrVersionConflict
	}
	return nil
}

func (r *SprintRepository) GetByID(ctx context.Context, id uint) (*sprint.Sprint, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), id)
}

func (r *SprintRepository) GetByIDForUpdate(ctx context.Context, id uint) (*sprint.Sprint, error) {
	return r.get(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), id)
}

func (r *SprintRepository) get(tx *gorm.DB, id uint) (*sprint.Sprint, error) {
	var model models.SprintModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sprint.ErrSprintNotFound
		}
		return nil, fmt.Errorf("failed to find sprint: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *SprintRepository) FindActive(ctx context.Context) (*sprint.Sprint, error) {
	var list []models.SprintModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Scopes(db.ForUpdate()).
		Where("status = ?", sprint.StatusActive.String()).
		Order("id ASC").
		Limit(1).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to find active sprint: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return r.mapper.ToDomain(&list[0])
}

// ListCompleted returns completed sprints, most recent start first.
func (r *SprintRepository) ListCompleted(ctx context.Context) ([]*sprint.Sprint, error) {
	var list []models.SprintModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("status = ?", sprint.StatusCompleted.String()).
		Order("start_date DESC").
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed sprints: %w", err)
	}
	return r.mapper.ToDomainList(list)
}
