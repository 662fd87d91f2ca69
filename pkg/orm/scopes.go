// Package orm holds the gorm scopes shared by the repositories.
package orm

import "gorm.io/gorm"

// ForGym restricts a query to rows owned by gymID. Every member and plan
// query made on behalf of a gym goes through it.
func ForGym(gymID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("gym_id = ?", gymID)
	}
}

// Page is a 1-based page request. A zero Limit means DefaultLimit.
type Page struct {
	Number int
	Limit  int
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Paginate applies LIMIT/OFFSET for p, clamping the limit to MaxLimit.
func Paginate(p Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		limit := p.Limit
		switch {
		case limit <= 0:
			limit = DefaultLimit
		case limit > MaxLimit:
			limit = MaxLimit
		}
		number := p.Number
		if number < 1 {
			number = 1
		}
		return db.Limit(limit).Offset((number - 1) * limit)
	}
}

// Newest orders by id descending.
func Newest(db *gorm.DB) *gorm.DB {
	return db.Order("id desc")
}
