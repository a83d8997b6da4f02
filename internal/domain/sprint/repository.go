package sprint

import "context"

type Repository interface {
	Create(ctx context.Context, s *Sprint) error
	Update(ctx context.Context, s *Sprint) error
	GetByID(ctx context.Context, id uint) (*Sprint, error)
	// GetByIDForUpdate loads the sprint with a row lock when called inside a
	// transaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*Sprint, error)
	// FindActive returns the active sprint, or nil when none is active. It
	// locks the matching rows when called inside a transaction.
	FindActive(ctx context.Context) (*Sprint, error)
	ListCompleted(ctx context.Context) ([]*Sprint, error)
}
