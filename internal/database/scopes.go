package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnedBy restricts a query to rows owned by ownerID.
func OwnedBy(ownerID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: "owner_id"},
			Value:  ownerID,
		})
	}
}
