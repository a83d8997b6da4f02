package mappers

import (
	"fmt"

	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/models"
)

type DevTaskMapper interface {
	ToModel(d *devtask.DevTask) *models.DevTaskModel
	ToDomain(model *models.DevTaskModel) (*devtask.DevTask, error)
	ToDomainList(list []models.DevTaskModel) ([]*devtask.DevTask, error)
}

type DevTaskMapperImpl struct{}

func NewDevTaskMapper() DevTaskMapper {
	return &DevTaskMapperImpl{}
}

func (m *DevTaskMapperImpl) ToModel(d *devtask.DevTask) *models.DevTaskModel {
	roles := d.Roles()
	structure := d.Structure()
	return &models.DevTaskModel{
		ID:              d.ID(),
		IssueKey:        d.IssueKey(),
		ProductID:       d.ProductID(),
		Title:           d.Title(),
		Description:     d.Description(),
		Type:            d.Type().String(),
		Status:          d.Status().String(),
		ImplementorID:   roles.ImplementorID,
		DeveloperID:     roles.DeveloperID,
		TesterID:        roles.TesterID,
		ModuleID:        structure.ModuleID,
		ComponentID:     structure.ComponentID,
		AddonID:         structure.AddonID,
		FeatureID:       structure.FeatureID,
		SupportTicketID: d.SupportTicketID(),
		StoryPoints:     d.StoryPoints(),
		SprintID:        d.SprintID(),
		BlockedReason:   d.BlockedReason(),
		CreatedBy:       d.CreatedBy(),
		CompletedAt:     toMilliPtr(d.CompletedAt()),
		Version:         d.Version(),
		CreatedAt:       d.CreatedAt().UnixMilli(),
		UpdatedAt:       d.UpdatedAt().UnixMilli(),
	}
}

func (m *DevTaskMapperImpl) ToDomain(model *models.DevTaskModel) (*devtask.DevTask, error) {
	if model == nil {
		return nil, nil
	}

	d, err := devtask.ReconstructDevTask(devtask.ReconstructParams{
		ID:          model.ID,
		IssueKey:    model.IssueKey,
		ProductID:   model.ProductID,
		Title:       model.Title,
		Description: model.Description,
		Type:        devtask.Type(model.Type),
		Status:      devtask.Status(model.Status),
		Roles: devtask.Roles{
			ImplementorID: model.ImplementorID,
			DeveloperID:   model.DeveloperID,
			TesterID:      model.TesterID,
		},
		Structure: devtask.Structure{
			ModuleID:    model.ModuleID,
			ComponentID: model.ComponentID,
			AddonID:     model.AddonID,
			FeatureID:   model.FeatureID,
		},
		SupportTicketID: model.SupportTicketID,
		StoryPoints:     model.StoryPoints,
		SprintID:        model.SprintID,
		BlockedReason:   model.BlockedReason,
		CreatedBy:       model.CreatedBy,
		CompletedAt:     fromMilliPtr(model.CompletedAt),
		Version:         model.Version,
		CreatedAt:       fromMilli(model.CreatedAt),
		UpdatedAt:       fromMilli(model.UpdatedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct dev task %d: %w", model.ID, err)
	}
	return d, nil
}

func (m *DevTaskMapperImpl) ToDomainList(list []models.DevTaskModel) ([]*devtask.DevTask, error) {
	out := make([]*devtask.DevTask, 0, len(list))
	for i := range list {
		d, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
