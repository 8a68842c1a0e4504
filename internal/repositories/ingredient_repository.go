package repositories

import "cookbook/internal/models"

// IngredientRepository defines the interface for owner-scoped ingredient
// data access.
type IngredientRepository interface {
	ListByOwner(ownerID string) ([]models.Ingredient, error)
	GetByIDs(ownerID string, ids []string) ([]models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
}
