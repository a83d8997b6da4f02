package models

type SprintModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	StartDate int64  `gorm:"not null;index"`
	EndDate   int64  `gorm:"not null"`
	Status    string `gorm:"size:20;not null;index"`
	Goal      string `gorm:"type:text"`
	Velocity  *int
	// ActiveSlot is 1 while the sprint is active and NULL otherwise; the
	// unique index allows at most one active sprint.
	ActiveSlot  *int `gorm:"uniqueIndex"`
	StartedAt   *int64
	CompletedAt *int64
	Version     int   `gorm:"not null;default:1"`
	CreatedAt   int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (SprintModel) TableName() string {
	return "sprints"
}
