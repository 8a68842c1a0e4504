package services

import (
	"errors"
	"io"

	"cookbook/internal/models"
	"cookbook/internal/repositories"
	"cookbook/pkg/imagestore"
	"cookbook/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventPublisher publishes recipe lifecycle events to a message broker.
// A nil publisher disables events.
type EventPublisher interface {
	PublishRecipeEvent(event map[string]interface{}) error
}

// ImageStore persists uploaded recipe images and returns the stored path.
type ImageStore interface {
	SaveRecipeImage(filename string, r io.Reader) (string, error)
	Remove(path string) error
}

// RecipeInput carries the full field set of a recipe create or replace.
// TagIDs/IngredientIDs reference existing records of the same owner.
type RecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []string
	IngredientIDs []string
}

// RecipePatch carries the optional fields of a partial recipe update.
// Nil fields, relation sets included, are left untouched.
type RecipePatch struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]string
	IngredientIDs *[]string
}

// RecipeService handles business logic for the recipe aggregate: scalar
// fields, the tag/ingredient relation sets and the attached image.
type RecipeService struct {
	recipeRepo     repositories.RecipeRepository
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
	images         ImageStore
	events         EventPublisher
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	tagRepo repositories.TagRepository,
	ingredientRepo repositories.IngredientRepository,
	images ImageStore,
	events EventPublisher,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		images:         images,
		events:         events,
	}
}

// List retrieves the owner's recipes, newest first.
func (s *RecipeService) List(ownerID string) ([]models.Recipe, error) {
	return s.recipeRepo.ListByOwner(ownerID)
}

// Get retrieves one of the owner's recipes with relations loaded.
func (s *RecipeService) Get(ownerID, id string) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// Create creates a recipe stamped with the owner's identity and attaches
// the referenced tags and ingredients.
func (s *RecipeService) Create(ownerID string, in RecipeInput) (*models.Recipe, error) {
	tags, err := s.resolveTags(ownerID, in.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ownerID, in.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:      ownerID,
		Title:       in.Title,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        in.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	s.publish("recipe.created", recipe)
	return recipe, nil
}

// Replace overwrites every field of the recipe. Relation sets absent from
// the input are cleared, so a replace without tags detaches all tags.
func (s *RecipeService) Replace(ownerID, id string, in RecipeInput) (*models.Recipe, error) {
	recipe, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ownerID, in.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ownerID, in.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe.Title = in.Title
	recipe.TimeMinutes = in.TimeMinutes
	recipe.Price = in.Price
	recipe.Link = in.Link
	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	if err := s.recipeRepo.ReplaceTags(recipe, tags); err != nil {
		return nil, err
	}
	if err := s.recipeRepo.ReplaceIngredients(recipe, ingredients); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Patch applies a partial update. Only non-nil fields change; relation
// sets are replaced only when present in the patch.
func (s *RecipeService) Patch(ownerID, id string, patch RecipePatch) (*models.Recipe, error) {
	recipe, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	// Resolve the supplied relation sets before writing anything, so a
	// patch carrying an unknown ID fails without committing a partial
	// update.
	var tags []models.Tag
	if patch.TagIDs != nil {
		if tags, err = s.resolveTags(ownerID, *patch.TagIDs); err != nil {
			return nil, err
		}
	}
	var ingredients []models.Ingredient
	if patch.IngredientIDs != nil {
		if ingredients, err = s.resolveIngredients(ownerID, *patch.IngredientIDs); err != nil {
			return nil, err
		}
	}

	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.TimeMinutes != nil {
		recipe.TimeMinutes = *patch.TimeMinutes
	}
	if patch.Price != nil {
		recipe.Price = *patch.Price
	}
	if patch.Link != nil {
		recipe.Link = *patch.Link
	}
	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}

	if patch.TagIDs != nil {
		if err := s.recipeRepo.ReplaceTags(recipe, tags); err != nil {
			return nil, err
		}
	}
	if patch.IngredientIDs != nil {
		if err := s.recipeRepo.ReplaceIngredients(recipe, ingredients); err != nil {
			return nil, err
		}
	}
	return recipe, nil
}

// Delete deletes one of the owner's recipes.
func (s *RecipeService) Delete(ownerID, id string) error {
	if err := s.recipeRepo.Delete(ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.publish("recipe.deleted", &models.Recipe{ID: id, UserID: ownerID})
	return nil
}

// AttachImage stores the uploaded payload and records its path on the
// recipe. Nothing is persisted when the payload is not a valid image.
func (s *RecipeService) AttachImage(ownerID, id, filename string, r io.Reader) (*models.Recipe, error) {
	recipe, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	path, err := s.images.SaveRecipeImage(filename, r)
	if err != nil {
		if errors.Is(err, imagestore.ErrInvalidImage) {
			return nil, ErrInvalidImage
		}
		return nil, err
	}

	recipe.Image = path
	if err := s.recipeRepo.Update(recipe); err != nil {
		// No row points at the file anymore, so it must not stay on disk.
		if rmErr := s.images.Remove(path); rmErr != nil {
			logger.Warn("failed to remove orphaned recipe image",
				zap.String("path", path), zap.Error(rmErr))
		}
		return nil, err
	}
	return recipe, nil
}

// resolveTags maps tag IDs to the owner's tag records. Any ID that is
// missing, or owned by another user, fails the whole lookup.
func (s *RecipeService) resolveTags(ownerID string, ids []string) ([]models.Tag, error) {
	ids = dedupe(ids)
	tags, err := s.tagRepo.GetByIDs(ownerID, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrUnknownAttribute
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(ownerID string, ids []string) ([]models.Ingredient, error) {
	ids = dedupe(ids)
	ingredients, err := s.ingredientRepo.GetByIDs(ownerID, ids)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(ids) {
		return nil, ErrUnknownAttribute
	}
	return ingredients, nil
}

// publish emits a recipe lifecycle event. Events are advisory: a broker
// failure is logged and never fails the request.
func (s *RecipeService) publish(kind string, recipe *models.Recipe) {
	if s.events == nil {
		return
	}
	event := map[string]interface{}{
		"event":     kind,
		"recipe_id": recipe.ID,
		"user_id":   recipe.UserID,
		"title":     recipe.Title,
	}
	if err := s.events.PublishRecipeEvent(event); err != nil {
		logger.Warn("failed to publish recipe event", zap.String("event", kind), zap.Error(err))
	}
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
