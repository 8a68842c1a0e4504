package handlers

import (
	"cookbook/internal/models"
	"cookbook/internal/services"
	"cookbook/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IngredientHandler handles HTTP requests for the caller's ingredients.
type IngredientHandler struct {
	service  *services.IngredientService
	validate *validator.Validate
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(service *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the ingredient routes on an authenticated
// router group.
func (h *IngredientHandler) RegisterRoutes(router fiber.Router) {
	ingredientRoutes := router.Group("/ingredients")
	ingredientRoutes.Get("/", h.HandleList)
	ingredientRoutes.Post("/", h.HandleCreate)
}

// CreateIngredientRequest represents the request body for ingredient creation.
type CreateIngredientRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// IngredientResponse is the public representation of an ingredient.
type IngredientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toIngredientResponse(ingredient models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:   ingredient.ID,
		Name: ingredient.Name,
	}
}

func toIngredientResponses(ingredients []models.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, toIngredientResponse(ingredient))
	}
	return out
}

// HandleList retrieves the caller's ingredients.
func (h *IngredientHandler) HandleList(c *fiber.Ctx) error {
	ingredients, err := h.service.List(currentUserID(c))
	if err != nil {
		logger.Error("failed to list ingredients", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve ingredients",
		})
	}
	return c.JSON(toIngredientResponses(ingredients))
}

// HandleCreate creates an ingredient owned by the caller.
func (h *IngredientHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	ingredient, err := h.service.Create(currentUserID(c), req.Name)
	if err != nil {
		logger.Error("failed to create ingredient", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create ingredient",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toIngredientResponse(*ingredient))
}
