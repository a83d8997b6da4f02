package dto

import (
	"time"

	ticketdto "github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/devtask"
)

type StructureDTO struct {
	ModuleID    *uint `json:"module_id"`
	ComponentID *uint `json:"component_id"`
	AddonID     *uint `json:"addon_id"`
	FeatureID   *uint `json:"feature_id"`
}

type DevTaskDTO struct {
	ID              uint         `json:"id"`
	IssueKey        string       `json:"issue_key"`
	ProductID       uint         `json:"product_id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Type            string       `json:"type"`
	Status          string       `json:"status"`
	StatusLabel     string       `json:"status_label"`
	ImplementorID   uint         `json:"implementor_id"`
	DeveloperID     uint         `json:"developer_id"`
	TesterID        uint         `json:"tester_id"`
	Structure       StructureDTO `json:"structure"`
	SupportTicketID *uint        `json:"support_ticket_id"`
	StoryPoints     int          `json:"story_points"`
	SprintID        *uint        `json:"sprint_id"`
	BlockedReason   string       `json:"blocked_reason,omitempty"`
	CreatedBy       uint         `json:"created_by"`
	CompletedAt     *time.Time   `json:"completed_at"`
	Version         int          `json:"version"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func ToDevTaskDTO(d *devtask.DevTask) *DevTaskDTO {
	if d == nil {
		return nil
	}
	roles := d.Roles()
	s := d.Structure()
	return &DevTaskDTO{
		ID:            d.ID(),
		IssueKey:      d.IssueKey(),
		ProductID:     d.ProductID(),
		Title:         d.Title(),
		Description:   d.Description(),
		Type:          d.Type().String(),
		Status:        d.Status().String(),
		StatusLabel:   ticketdto.HumanLabel(d.Status().String()),
		ImplementorID: roles.ImplementorID,
		DeveloperID:   roles.DeveloperID,
		TesterID:      roles.TesterID,
		Structure: StructureDTO{
			ModuleID:    s.ModuleID,
			ComponentID: s.ComponentID,
			AddonID:     s.AddonID,
			FeatureID:   s.FeatureID,
		},
		SupportTicketID: d.SupportTicketID(),
		StoryPoints:     d.StoryPoints(),
		SprintID:        d.SprintID(),
		BlockedReason:   d.BlockedReason(),
		CreatedBy:       d.CreatedBy(),
		CompletedAt:     d.CompletedAt(),
		Version:         d.Version(),
		CreatedAt:       d.CreatedAt(),
		UpdatedAt:       d.UpdatedAt(),
	}
}

// StatusChangeResult carries advisory warnings next to the updated task.
type StatusChangeResult struct {
	DevTask  *DevTaskDTO `json:"dev_task"`
	Warnings []string    `json:"warnings"`
}

// ConversionResult is the outcome of turning a support ticket into work.
type ConversionResult struct {
	DevTask *DevTaskDTO           `json:"dev_task"`
	Ticket  *ticketdto.TicketDTO  `json:"ticket"`
	Comment *ticketdto.CommentDTO `json:"comment"`
}

// ConversionDefaults are a product's default role holders.
type ConversionDefaults struct {
	ProductID     uint  `json:"product_id"`
	ImplementorID *uint `json:"implementor_id"`
	DeveloperID   *uint `json:"developer_id"`
	TesterID      *uint `json:"tester_id"`
}
