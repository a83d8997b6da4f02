package models

type DevTaskModel struct {
	ID              uint   `gorm:"primaryKey"`
	IssueKey        string `gorm:"uniqueIndex;size:32;not null"`
	ProductID       uint   `gorm:"not null;index"`
	Title           string `gorm:"size:200;not null"`
	Description     string `gorm:"type:text"`
	Type            string `gorm:"size:20;not null"`
	Status          string `gorm:"size:20;not null;index"`
	ImplementorID   uint   `gorm:"not null;index"`
	DeveloperID     uint   `gorm:"not null;index"`
	TesterID        uint   `gorm:"not null;index"`
	ModuleID        *uint
	ComponentID     *uint
	AddonID         *uint
	FeatureID       *uint
	SupportTicketID *uint  `gorm:"index"`
	StoryPoints     int    `gorm:"not null;default:0"`
	SprintID        *uint  `gorm:"index"`
	BlockedReason   string `gorm:"type:text"`
	CreatedBy       uint   `gorm:"not null"`
	CompletedAt     *int64
	Version         int   `gorm:"not null;default:1"`
	CreatedAt       int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt       int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (DevTaskModel) TableName() string {
	return "dev_tasks"
}
