package repositories

import "gorm.io/gorm"

// ownerScoped narrows a query to rows owned by the given user. Every tag,
// ingredient and recipe lookup goes through this filter, so a record owned
// by someone else is indistinguishable from one that does not exist.
func ownerScoped(db *gorm.DB, ownerID string) *gorm.DB {
	return db.Where("user_id = ?", ownerID)
}
