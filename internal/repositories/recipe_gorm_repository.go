package repositories

import (
	"fmt"

	"cookbook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

// ListByOwner retrieves the owner's recipes, most recently created first,
// with their tag and ingredient sets loaded.
func (r *GORMRecipeRepository) ListByOwner(ownerID string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := ownerScoped(r.db, ownerID).
		Preload("Tags").
		Preload("Ingredients").
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetByID retrieves a single recipe by its ID, restricted to the owner.
func (r *GORMRecipeRepository) GetByID(ownerID, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := ownerScoped(r.db, ownerID).
		Preload("Tags").
		Preload("Ingredients").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("recipe with ID %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get recipe by ID %s: %w", id, err)
	}
	return &recipe, nil
}

// Create creates a new recipe. Any tags/ingredients already set on the
// recipe are attached through the join tables.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if err := r.db.Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update persists the recipe's scalar fields. Relation sets are changed
// only through ReplaceTags/ReplaceIngredients.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe) error {
	res := r.db.Omit("Tags", "Ingredients").Save(recipe)
	if res.Error != nil {
		return fmt.Errorf("failed to update recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("recipe with ID %s for update: %w", recipe.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// ReplaceTags overwrites the recipe's tag set with the given tags.
// An empty slice detaches everything.
func (r *GORMRecipeRepository) ReplaceTags(recipe *models.Recipe, tags []models.Tag) error {
	if err := r.db.Model(recipe).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("failed to replace recipe tags: %w", err)
	}
	recipe.Tags = tags
	return nil
}

// ReplaceIngredients overwrites the recipe's ingredient set.
func (r *GORMRecipeRepository) ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error {
	if err := r.db.Model(recipe).Association("Ingredients").Replace(&ingredients); err != nil {
		return fmt.Errorf("failed to replace recipe ingredients: %w", err)
	}
	recipe.Ingredients = ingredients
	return nil
}

// Delete deletes the owner's recipe by its ID.
func (r *GORMRecipeRepository) Delete(ownerID, id string) error {
	res := ownerScoped(r.db, ownerID).Delete(&models.Recipe{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("recipe with ID %s for deletion: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
