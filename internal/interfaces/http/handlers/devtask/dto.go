package devtask

import (
	"github.com/systech-labs/deskflow/internal/application/devtask/usecases"
	"github.com/systech-labs/deskflow/internal/domain/devtask"
)

// WorkFields are shared by direct creation and ticket conversion.
type WorkFields struct {
	Title              string `json:"title" binding:"max=255"`
	Description        string `json:"description" binding:"max=20000"`
	Type               string `json:"type" binding:"max=32"`
	ImplementorID      uint   `json:"implementor_id"`
	DeveloperID        uint   `json:"developer_id"`
	TesterID           uint   `json:"tester_id"`
	UseProductDefaults bool   `json:"use_product_defaults"`
	ModuleID           *uint  `json:"module_id,omitempty"`
	ComponentID        *uint  `json:"component_id,omitempty"`
	AddonID            *uint  `json:"addon_id,omitempty"`
	FeatureID          *uint  `json:"feature_id,omitempty"`
	StoryPoints        int    `json:"story_points" binding:"gte=0"`
}

func (f WorkFields) roles() usecases.RoleInput {
	return usecases.RoleInput{
		ImplementorID: f.ImplementorID,
		DeveloperID:   f.DeveloperID,
		TesterID:      f.TesterID,
	}
}

func (f WorkFields) structure() devtask.Structure {
	return devtask.Structure{
		ModuleID:    f.ModuleID,
		ComponentID: f.ComponentID,
		AddonID:     f.AddonID,
		FeatureID:   f.FeatureID,
	}
}

type CreateDevTaskRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	WorkFields
}

// ConvertTicketRequest may leave the title and description empty to reuse
// the ticket's own.
type ConvertTicketRequest struct {
	WorkFields
}

type ChangeStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	BlockedReason string `json:"blocked_reason" binding:"max=2000"`
}

type UpdateStoryPointsRequest struct {
	StoryPoints *int `json:"story_points" binding:"required,gte=0"`
}

// AssignSprintRequest moves the task to the backlog when SprintID is null.
type AssignSprintRequest struct {
	SprintID *uint `json:"sprint_id"`
}
