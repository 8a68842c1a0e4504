package repositories

import "cookbook/internal/models"

// RecipeRepository defines the interface for owner-scoped recipe data
// access, including the tag/ingredient relation sets.
type RecipeRepository interface {
	ListByOwner(ownerID string) ([]models.Recipe, error)
	GetByID(ownerID, id string) (*models.Recipe, error)
	Create(recipe *models.Recipe) error
	Update(recipe *models.Recipe) error
	ReplaceTags(recipe *models.Recipe, tags []models.Tag) error
	ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error
	Delete(ownerID, id string) error
}
