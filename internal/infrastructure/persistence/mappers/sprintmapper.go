package mappers

import (
	"fmt"

	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/models"
)

type SprintMapper interface {
	ToModel(s *sprint.Sprint) *models.SprintModel
	ToDomain(model *models.SprintModel) (*sprint.Sprint, error)
	ToDomainList(list []models.SprintModel) ([]*sprint.Sprint, error)
}

type SprintMapperImpl struct{}

func NewSprintMapper() SprintMapper {
	return &SprintMapperImpl{}
}

func (m *SprintMapperImpl) ToModel(s *sprint.Sprint) *models.SprintModel {
	model := &models.SprintModel{
		ID:          s.ID(),
		Name:        s.Name(),
		StartDate:   s.StartDate().UnixMilli(),
		EndDate:     s.EndDate().UnixMilli(),
		Status:      s.Status().String(),
		Goal:        s.Goal(),
		Velocity:    s.Velocity(),
		StartedAt:   toMilliPtr(s.StartedAt()),
		CompletedAt: toMilliPtr(s.CompletedAt()),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt().UnixMilli(),
		UpdatedAt:   s.UpdatedAt().UnixMilli(),
	}
	if s.Status() == sprint.StatusActive {
		slot := 1
		model.ActiveSlot = &slot
	}
	return model
}

func (m *SprintMapperImpl) ToDomain(model *models.SprintModel) (*sprint.Sprint, error) {
	if model == nil {
		return nil, nil
	}

	s, err := sprint.ReconstructSprint(sprint.ReconstructParams{
		ID:          model.ID,
		Name:        model.Name,
		StartDate:   fromMilli(model.StartDate),
		EndDate:     fromMilli(model.EndDate),
		Status:      sprint.Status(model.Status),
		Goal:        model.Goal,
		Velocity:    model.Velocity,
		StartedAt:   fromMilliPtr(model.StartedAt),
		CompletedAt: fromMilliPtr(model.CompletedAt),
		Version:     model.Version,
		CreatedAt:   fromMilli(model.CreatedAt),
		UpdatedAt:   fromMilli(model.UpdatedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct sprint %d: %w", model.ID, err)
	}
	return s, nil
}

func (m *SprintMapperImpl) ToDomainList(list []models.SprintModel) ([]*sprint.Sprint, error) {
	out := make([]*sprint.Sprint, 0, len(list))
	for i := range list {
		s, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
