package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/mappers"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/models"
	"github.com/systech-labs/deskflow/internal/shared/db"
)

// ProductRepository stores products and their structure tree.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	model := mappers.ProductToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	p.ID = model.ID
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	model := mappers.ProductToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ProductModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":                   model.Name,
			"default_implementor_id": model.DefaultImplementorID,
			"default_developer_id":   model.DefaultDeveloperID,
			"default_tester_id":      model.DefaultTesterID,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	var model models.ProductModel
	if err := first(ctx, r.db, &model, product.ErrProductNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return mappers.ProductToDomain(&model), nil
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	var model models.ProductModel
	if err := first(ctx, r.db, &model, product.ErrProductNotFound, "code = ?", code); err != nil {
		return nil, err
	}
	return mappers.ProductToDomain(&model), nil
}

func (r *ProductRepository) CreateModule(ctx context.Context, m *product.Module) error {
	model := &models.ProductModuleModel{ProductID: m.ProductID, Name: m.Name}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save module: %w", err)
	}
	m.ID = model.ID
	return nil
}

func (r *ProductRepository) CreateComponent(ctx context.Context, c *product.Component) error {
	model := &models.ProductComponentModel{ModuleID: c.ModuleID, Name: c.Name}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save component: %w", err)
	}
	c.ID = model.ID
	return nil
}

func (r *ProductRepository) CreateAddon(ctx context.Context, a *product.Addon) error {
	model := &models.ProductAddonModel{ProductID: a.ProductID, Name: a.Name}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save addon: %w", err)
	}
	a.ID = model.ID
	return nil
}

func (r *ProductRepository) CreateEpic(ctx context.Context, e *product.Epic) error {
	model := &models.ProductEpicModel{ProductID: e.ProductID, Name: e.Name}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save epic: %w", err)
	}
	e.ID = model.ID
	return nil
}

func (r *ProductRepository) CreateFeature(ctx context.Context, f *product.Feature) error {
	model := &models.ProductFeatureModel{EpicID: f.EpicID, Name: f.Name}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save feature: %w", err)
	}
	f.ID = model.ID
	return nil
}

func (r *ProductRepository) GetModule(ctx context.Context, id uint) (*product.Module, error) {
	var model models.ProductModuleModel
	if err := first(ctx, r.db, &model, product.ErrModuleNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return mappers.ModuleToDomain(&model), nil
}

func (r *ProductRepository) GetComponent(ctx context.Context, id uint) (*product.Component, error) {
	var model models.ProductComponentModel
	if err := first(ctx, r.db, &model, product.ErrComponentNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return mappers.ComponentToDomain(&model), nil
}

func (r *ProductRepository) GetAddon(ctx context.Context, id uint) (*product.Addon, error) {
	var model models.ProductAddonModel
	if err := first(ctx, r.db, &model, product.ErrAddonNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return mappers.AddonToDomain(&model), nil
}

func (r *ProductRepository) GetFeature(ctx context.Context, id uint) (*product.Feature, error) {
	var model models.ProductFeatureModel
	if err := first(ctx, r.db, &model, product.ErrFeatureNotFound, "id = ?", id); err != nil {
		return nil, err
	}
	return mappers.FeatureToDomain(&model), nil
}

// first loads one row into dest and maps a missing row to notFound.
func first(ctx context.Context, gdb *gorm.DB, dest any, notFound error, query string, args ...any) error {
	err := db.GetTxFromContext(ctx, gdb).Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if err != nil {
		return fmt.Errorf("failed to query %T: %w", dest, err)
	}
	return nil
}
