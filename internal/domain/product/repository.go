package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)

	CreateModule(ctx context.Context, m *Module) error
	CreateComponent(ctx context.Context, c *Component) error
	CreateAddon(ctx context.Context, a *Addon) error
	CreateEpic(ctx context.Context, e *Epic) error
	CreateFeature(ctx context.Context, f *Feature) error

	GetModule(ctx context.Context, id uint) (*Module, error)
	GetComponent(ctx context.Context, id uint) (*Component, error)
	GetAddon(ctx context.Context, id uint) (*Addon, error)
	GetFeature(ctx context.Context, id uint) (*Feature, error)
}
