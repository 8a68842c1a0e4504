package services

import (
	"cookbook/internal/models"
	"cookbook/internal/repositories"
)

// IngredientService handles business logic related to ingredients.
type IngredientService struct {
	repo repositories.IngredientRepository
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(repo repositories.IngredientRepository) *IngredientService {
	return &IngredientService{
		repo: repo,
	}
}

// List retrieves the owner's ingredients, name descending.
func (s *IngredientService) List(ownerID string) ([]models.Ingredient, error) {
	return s.repo.ListByOwner(ownerID)
}

// Create creates a new ingredient stamped with the owner's identity.
func (s *IngredientService) Create(ownerID, name string) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{
		UserID: ownerID,
		Name:   name,
	}
	if err := s.repo.Create(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}
