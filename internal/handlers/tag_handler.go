package handlers

import (
	"cookbook/internal/models"
	"cookbook/internal/services"
	"cookbook/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TagHandler handles HTTP requests for the caller's tags.
type TagHandler struct {
	service  *services.TagService
	validate *validator.Validate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service *services.TagService) *TagHandler {
	return &TagHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the tag routes on an authenticated router group.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	tagRoutes := router.Group("/tags")
	tagRoutes.Get("/", h.HandleList)
	tagRoutes.Post("/", h.HandleCreate)
}

// CreateTagRequest represents the request body for tag creation.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// TagResponse is the public representation of a tag.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toTagResponse(tag models.Tag) TagResponse {
	return TagResponse{
		ID:   tag.ID,
		Name: tag.Name,
	}
}

func toTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, toTagResponse(tag))
	}
	return out
}

// HandleList retrieves the caller's tags.
func (h *TagHandler) HandleList(c *fiber.Ctx) error {
	tags, err := h.service.List(currentUserID(c))
	if err != nil {
		logger.Error("failed to list tags", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve tags",
		})
	}
	return c.JSON(toTagResponses(tags))
}

// HandleCreate creates a tag owned by the caller.
func (h *TagHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	tag, err := h.service.Create(currentUserID(c), req.Name)
	if err != nil {
		logger.Error("failed to create tag", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create tag",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toTagResponse(*tag))
}
