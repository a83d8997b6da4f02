package mappers

import (
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/models"
)

// Product structure entities are plain structs, so these are free functions
// rather than a mapper type.

func ProductToModel(p *product.Product) *models.ProductModel {
	return &models.ProductModel{
		ID:                   p.ID,
		Code:                 p.Code,
		Name:                 p.Name,
		DefaultImplementorID: p.DefaultImplementorID,
		DefaultDeveloperID:   p.DefaultDeveloperID,
		DefaultTesterID:      p.DefaultTesterID,
	}
}

func ProductToDomain(model *models.ProductModel) *product.Product {
	return &product.Product{
		ID:                   model.ID,
		Code:                 model.Code,
		Name:                 model.Name,
		DefaultImplementorID: model.DefaultImplementorID,
		DefaultDeveloperID:   model.DefaultDeveloperID,
		DefaultTesterID:      model.DefaultTesterID,
	}
}

func ModuleToDomain(model *models.ProductModuleModel) *product.Module {
	return &product.Module{ID: model.ID, ProductID: model.ProductID, Name: model.Name}
}

func ComponentToDomain(model *models.ProductComponentModel) *product.Component {
	return &product.Component{ID: model.ID, ModuleID: model.ModuleID, Name: model.Name}
}

func AddonToDomain(model *models.ProductAddonModel) *product.Addon {
	return &product.Addon{ID: model.ID, ProductID: model.ProductID, Name: model.Name}
}

func FeatureToDomain(model *models.ProductFeatureModel) *product.Feature {
	return &product.Feature{ID: model.ID, EpicID: model.EpicID, Name: model.Name}
}
