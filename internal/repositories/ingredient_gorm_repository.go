package repositories

import (
	"fmt"

	"cookbook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMIngredientRepository is a GORM implementation of IngredientRepository.
type GORMIngredientRepository struct {
	db *gorm.DB
}

// NewGORMIngredientRepository creates a new instance of GORMIngredientRepository.
func NewGORMIngredientRepository(db *gorm.DB) *GORMIngredientRepository {
	return &GORMIngredientRepository{
		db: db,
	}
}

// ListByOwner retrieves the owner's ingredients ordered by name descending.
func (r *GORMIngredientRepository) ListByOwner(ownerID string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := ownerScoped(r.db, ownerID).Order("name DESC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// GetByIDs retrieves the owner's ingredients matching the given IDs.
func (r *GORMIngredientRepository) GetByIDs(ownerID string, ids []string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := ownerScoped(r.db, ownerID).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to get ingredients by IDs: %w", err)
	}
	return ingredients, nil
}

// Create creates a new ingredient in the database.
func (r *GORMIngredientRepository) Create(ingredient *models.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	if err := r.db.Create(ingredient).Error; err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}
