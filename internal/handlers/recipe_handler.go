package handlers

import (
	"errors"

	"cookbook/internal/models"
	"cookbook/internal/services"
	"cookbook/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RecipeHandler handles HTTP requests for the caller's recipes, including
// the relation sets and image upload.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the recipe routes on an authenticated router group.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router) {
	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Get("/", h.HandleList)
	recipeRoutes.Post("/", h.HandleCreate)
	recipeRoutes.Get("/:id", h.HandleGet)
	recipeRoutes.Put("/:id", h.HandleReplace)
	recipeRoutes.Patch("/:id", h.HandlePatch)
	recipeRoutes.Delete("/:id", h.HandleDelete)
	recipeRoutes.Post("/:id/upload-image", h.HandleUploadImage)
}

// RecipeRequest represents the full field set for recipe creation and
// replacement. The tags/ingredients arrays carry IDs of existing records
// owned by the caller.
type RecipeRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	TimeMinutes   *int     `json:"time_minutes" validate:"required,gte=0"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Link          string   `json:"link" validate:"omitempty,url"`
	TagIDs        []string `json:"tags"`
	IngredientIDs []string `json:"ingredients"`
}

// RecipePatchRequest represents a partial recipe update. Absent fields,
// the relation arrays included, are left untouched.
type RecipePatchRequest struct {
	Title         *string   `json:"title" validate:"omitempty,max=255"`
	TimeMinutes   *int      `json:"time_minutes" validate:"omitempty,gte=0"`
	Price         *float64  `json:"price" validate:"omitempty,gte=0"`
	Link          *string   `json:"link" validate:"omitempty,url"`
	TagIDs        *[]string `json:"tags"`
	IngredientIDs *[]string `json:"ingredients"`
}

// RecipeListItem is the list representation of a recipe: relation sets
// are bare ID references to keep list payloads small.
type RecipeListItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	TimeMinutes int      `json:"time_minutes"`
	Price       float64  `json:"price"`
	Link        string   `json:"link"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
}

// RecipeDetail is the detail representation: relation sets are expanded
// into full objects.
type RecipeDetail struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       float64              `json:"price"`
	Link        string               `json:"link"`
	Image       string               `json:"image"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

func toRecipeListItem(recipe models.Recipe) RecipeListItem {
	tagIDs := make([]string, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	ingredientIDs := make([]string, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredientIDs = append(ingredientIDs, ingredient.ID)
	}
	return RecipeListItem{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       recipe.Image,
		Tags:        tagIDs,
		Ingredients: ingredientIDs,
	}
}

func toRecipeDetail(recipe *models.Recipe) RecipeDetail {
	return RecipeDetail{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       recipe.Image,
		Tags:        toTagResponses(recipe.Tags),
		Ingredients: toIngredientResponses(recipe.Ingredients),
	}
}

// HandleList retrieves the caller's recipes, newest first.
func (h *RecipeHandler) HandleList(c *fiber.Ctx) error {
	recipes, err := h.service.List(currentUserID(c))
	if err != nil {
		logger.Error("failed to list recipes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve recipes",
		})
	}

	items := make([]RecipeListItem, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, toRecipeListItem(recipe))
	}
	return c.JSON(items)
}

// HandleGet retrieves one of the caller's recipes with expanded relations.
func (h *RecipeHandler) HandleGet(c *fiber.Ctx) error {
	recipe, err := h.service.Get(currentUserID(c), c.Params("id"))
	if err != nil {
		return h.renderError(c, err, "Could not retrieve recipe")
	}
	return c.JSON(toRecipeDetail(recipe))
}

// HandleCreate creates a recipe owned by the caller.
func (h *RecipeHandler) HandleCreate(c *fiber.Ctx) error {
	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	recipe, err := h.service.Create(currentUserID(c), toRecipeInput(req))
	if err != nil {
		return h.renderError(c, err, "Could not create recipe")
	}
	return c.Status(fiber.StatusCreated).JSON(toRecipeDetail(recipe))
}

// HandleReplace overwrites every field of the recipe. Relation arrays
// absent from the payload are cleared.
func (h *RecipeHandler) HandleReplace(c *fiber.Ctx) error {
	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	recipe, err := h.service.Replace(currentUserID(c), c.Params("id"), toRecipeInput(req))
	if err != nil {
		return h.renderError(c, err, "Could not update recipe")
	}
	return c.JSON(toRecipeDetail(recipe))
}

// HandlePatch applies a partial update; absent fields are preserved.
func (h *RecipeHandler) HandlePatch(c *fiber.Ctx) error {
	var req RecipePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	recipe, err := h.service.Patch(currentUserID(c), c.Params("id"), services.RecipePatch{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.TagIDs,
		IngredientIDs: req.IngredientIDs,
	})
	if err != nil {
		return h.renderError(c, err, "Could not update recipe")
	}
	return c.JSON(toRecipeDetail(recipe))
}

// HandleDelete deletes one of the caller's recipes.
func (h *RecipeHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(currentUserID(c), c.Params("id")); err != nil {
		return h.renderError(c, err, "Could not delete recipe")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadImage attaches an uploaded image to the recipe. The file is
// expected in the "image" multipart field.
func (h *RecipeHandler) HandleUploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An image file is required in the 'image' field",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
		})
	}
	defer file.Close()

	recipe, err := h.service.AttachImage(currentUserID(c), c.Params("id"), fileHeader.Filename, file)
	if err != nil {
		return h.renderError(c, err, "Could not upload image")
	}

	return c.JSON(fiber.Map{
		"id":    recipe.ID,
		"image": recipe.Image,
	})
}

func toRecipeInput(req RecipeRequest) services.RecipeInput {
	return services.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   *req.TimeMinutes,
		Price:         *req.Price,
		Link:          req.Link,
		TagIDs:        req.TagIDs,
		IngredientIDs: req.IngredientIDs,
	}
}

// renderError maps service errors to HTTP responses. Foreign-owned
// records surface as 404, relation and image problems as 400.
func (h *RecipeHandler) renderError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Recipe not found",
		})
	case errors.Is(err, services.ErrUnknownAttribute):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "One or more referenced tags or ingredients do not exist",
		})
	case errors.Is(err, services.ErrInvalidImage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Uploaded file is not a valid image",
		})
	}
	logger.Error(fallback, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
	})
}
