package models

import "gorm.io/datatypes"

type TicketModel struct {
	ID                uint   `gorm:"primaryKey"`
	IssueKey          string `gorm:"uniqueIndex;size:32;not null"`
	ProductID         uint   `gorm:"not null;index"`
	Title             string `gorm:"size:200;not null"`
	Description       string `gorm:"type:text"`
	Type              string `gorm:"size:20;not null"`
	Status            string `gorm:"size:40;not null;index"`
	Channel           string `gorm:"size:20;not null"`
	ClientID          *uint  `gorm:"index"`
	ReporterID        uint   `gorm:"not null;index"`
	AssigneeID        *uint  `gorm:"index"`
	ClientPriority    *int
	InternalPriority  *int
	ClientSeverity    *int
	InternalSeverity  *int
	Labels            datatypes.JSON
	EscalationReason  string `gorm:"size:40"`
	EscalationNote    string `gorm:"type:text"`
	PushedToSystechAt *int64 `gorm:"index"`
	ParentID          *uint  `gorm:"index"`
	Resolution        string `gorm:"size:40"`
	ResolutionNote    string `gorm:"type:text"`
	CancelReason      string `gorm:"type:text"`
	Version           int    `gorm:"not null;default:1"`
	CreatedAt         int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt         int64  `gorm:"autoUpdateTime:milli;not null"`
	ResolvedAt        *int64
	ClosedAt          *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type CommentModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"not null;index"`
	AuthorID   uint   `gorm:"not null;index"`
	Body       string `gorm:"type:text;not null"`
	IsInternal bool   `gorm:"not null;default:false"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (CommentModel) TableName() string {
	return "ticket_comments"
}

type AttachmentModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    uint   `gorm:"not null;index"`
	FileName    string `gorm:"size:255;not null"`
	ContentType string `gorm:"size:100"`
	SizeBytes   int64  `gorm:"not null;default:0"`
	URL         string `gorm:"column:url;size:1024;not null"`
	UploadedBy  uint   `gorm:"not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "ticket_attachments"
}

// TicketLinkModel is unique per (source, target, type) so the same pair can
// carry several link types.
type TicketLinkModel struct {
	ID        uint   `gorm:"primaryKey"`
	SourceID  uint   `gorm:"not null;uniqueIndex:idx_ticket_links_pair"`
	TargetID  uint   `gorm:"not null;uniqueIndex:idx_ticket_links_pair;index"`
	LinkType  string `gorm:"size:20;not null;uniqueIndex:idx_ticket_links_pair"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (TicketLinkModel) TableName() string {
	return "ticket_links"
}
