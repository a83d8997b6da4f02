package migration

import (
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persisted model. The goose scripts are the
// source of truth for deployed databases; AutoMigrate is for development and
// tests.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ProductModel{},
		&models.ProductModuleModel{},
		&models.ProductComponentModel{},
		&models.ProductAddonModel{},
		&models.ProductEpicModel{},
		&models.ProductFeatureModel{},
		&models.IssueSequenceModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.AttachmentModel{},
		&models.TicketLinkModel{},
		&models.SprintModel{},
		&models.DevTaskModel{},
	}
}
