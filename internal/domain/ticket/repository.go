package ticket

import (
	"context"
	"errors"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrVersionConflict is returned by Update when the stored ticket was
	// modified after it was loaded.
	ErrVersionConflict = errors.New("ticket was modified concurrently")
)

type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	GetByIssueKey(ctx context.Context, issueKey string) (*Ticket, error)
	GetChildren(ctx context.Context, parentID uint) ([]*Ticket, error)
	HasChildren(ctx context.Context, id uint) (bool, error)
	// ListEscalationQueue returns live tickets pushed to the internal queue,
	// oldest push first.
	ListEscalationQueue(ctx context.Context) ([]*Ticket, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*Comment, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Attachment, error)
}

type LinkRepository interface {
	Create(ctx context.Context, l Link) error
	// ListForTicket returns links where the ticket is either end.
	ListForTicket(ctx context.Context, ticketID uint) ([]Link, error)
}
