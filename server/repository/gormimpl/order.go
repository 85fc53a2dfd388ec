package gormimpl

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	interfaces "lockstats/server/repository/interface"
)

// applyListOptions orders by the whitelisted sort column, breaks ties on id
// and applies the offset and limit.
func applyListOptions(db *gorm.DB, opts interfaces.ListOptions, sortColumns map[string]string) *gorm.DB {
	if column, ok := sortColumns[opts.Sort]; ok {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: opts.Desc})
	}
	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: opts.Desc})
	if opts.Limit > 0 {
		db = db.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		db = db.Offset(opts.Offset)
	}
	return db
}
