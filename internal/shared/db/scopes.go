package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate locks the selected rows until the surrounding transaction ends.
// Dialects without row locks (sqlite) drop the clause, where the database
// level write lock gives the same serialisation.
//
//	tx.Scopes(db.ForUpdate()).Where("status = ?", "active").Find(&rows)
func ForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}
