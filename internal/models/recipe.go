package models

import "gorm.io/gorm"

// Recipe is the aggregate entity: owned by a user, optionally linked to
// that user's tags and ingredients, and optionally carrying a stored
// image path.
type Recipe struct {
	ID          string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string       `json:"-" gorm:"index;type:varchar(36)"`
	Title       string       `json:"title" gorm:"type:varchar(255)"`
	TimeMinutes int          `json:"time_minutes"`
	Price       float64      `json:"price" gorm:"type:decimal(10,2)"`
	Link        string       `json:"link" gorm:"type:varchar(255)"`
	Image       string       `json:"image" gorm:"type:varchar(255)"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients"`
	gorm.Model  `json:"-"`
}
