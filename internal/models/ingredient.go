package models

import "gorm.io/gorm"

// Ingredient is a user-owned ingredient name referenced by recipes.
// Same shape and scoping rules as Tag.
type Ingredient struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"-" gorm:"index;type:varchar(36)"`
	Name       string `json:"name" gorm:"type:varchar(255)"`
	gorm.Model `json:"-"`
}
