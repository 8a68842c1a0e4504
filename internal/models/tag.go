package models

import "gorm.io/gorm"

// Tag is a user-owned label that can be attached to recipes.
// Names are not unique per owner; duplicates are allowed.
type Tag struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"-" gorm:"index;type:varchar(36)"`
	Name       string `json:"name" gorm:"type:varchar(255)"`
	gorm.Model `json:"-"`
}
