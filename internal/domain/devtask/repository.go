package devtask

import (
	"context"
	"errors"
)

var (
	ErrDevTaskNotFound = errors.New("dev task not found")
	// ErrVersionConflict is returned by Update when the stored task changed
	// after it was loaded.
	ErrVersionConflict = errors.New("dev task was modified concurrently")
)

type Repository interface {
	Create(ctx context.Context, d *DevTask) error
	Update(ctx context.Context, d *DevTask) error
	GetByID(ctx context.Context, id uint) (*DevTask, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*DevTask, error)
	ListBySprint(ctx context.Context, sprintID uint) ([]*DevTask, error)
	// HasOpenForTicket reports whether a dev task that is not done still
	// references the ticket.
	HasOpenForTicket(ctx context.Context, ticketID uint) (bool, error)
	// LockBySprint row-locks every task bound to the sprint until the
	// surrounding transaction ends, so statuses cannot change between
	// SumDonePoints and UnbindIncomplete.
	LockBySprint(ctx context.Context, sprintID uint) error
	// SumDonePoints totals the story points of done tasks bound to the sprint.
	SumDonePoints(ctx context.Context, sprintID uint) (int, error)
	// UnbindIncomplete moves every task bound to the sprint that is not done
	// back to the backlog and returns how many moved.
	UnbindIncomplete(ctx context.Context, sprintID uint) (int64, error)
}
