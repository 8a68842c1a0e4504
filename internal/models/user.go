package models

import "gorm.io/gorm"

// User represents an account identified by its email address.
// Password always holds a bcrypt hash, never the raw secret.
type User struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password    string `json:"-" gorm:"type:varchar(255)"` // No json tag value for security
	Name        string `json:"name" gorm:"type:varchar(255)"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	gorm.Model  `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
