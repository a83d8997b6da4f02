package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/models"
	"github.com/systech-labs/deskflow/internal/shared/db"
)

// IssueKeyAllocator draws keys from the issue_sequences table. The sequence
// row is locked for the rest of the caller's transaction, so two tickets of
// the same product never receive the same number.
type IssueKeyAllocator struct {
	db       *gorm.DB
	products product.Repository
}

func NewIssueKeyAllocator(db *gorm.DB, products product.Repository) *IssueKeyAllocator {
	return &IssueKeyAllocator{db: db, products: products}
}

func (a *IssueKeyAllocator) Next(ctx context.Context, productID uint, kind product.IssueKind) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid issue kind: %q", kind)
	}

	p, err := a.products.GetByID(ctx, productID)
	if err != nil {
		return "", err
	}

	var seq int64
	allocate := func(tx *gorm.DB) error {
		// Make sure the row exists before locking it; a concurrent insert of
		// the same row is absorbed by DO NOTHING.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.IssueSequenceModel{ProductID: productID, Kind: string(kind)}).Error; err != nil {
			return fmt.Errorf("failed to initialise issue sequence: %w", err)
		}

		var row models.IssueSequenceModel
		if err := tx.Scopes(db.ForUpdate()).
			Where("product_id = ? AND kind = ?", productID, string(kind)).
			First(&row).Error; err != nil {
			return fmt.Errorf("failed to lock issue sequence: %w", err)
		}

		seq = row.LastValue + 1
		if err := tx.Model(&models.IssueSequenceModel{}).
			Where("product_id = ? AND kind = ?", productID, string(kind)).
			Update("last_value", seq).Error; err != nil {
			return fmt.Errorf("failed to advance issue sequence: %w", err)
		}
		return nil
	}

	if db.InTransaction(ctx) {
		err = allocate(db.GetTxFromContext(ctx, a.db))
	} else {
		err = a.db.WithContext(ctx).Transaction(allocate)
	}
	if err != nil {
		return "", err
	}

	return product.FormatIssueKey(p.Code, kind, seq), nil
}
