package tenant

import "gorm.io/gorm"

// Scope restricts a query to a single tenant. Every repository query in this
// codebase must apply it (or an equivalent company_id predicate).
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
