package handlers

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/internal/api/presenters"
	"Storybrush-Backend/pkg/generation"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GenerationHandler interface {
		GenerateStory(c *fiber.Ctx) error
		GenerateColoring(c *fiber.Ctx) error
	}

	generationHandler struct {
		generationService generation.GenerationService
		validator         *validator.Validate
	}
)

func NewGenerationHandler(generationService generation.GenerationService, validator *validator.Validate) GenerationHandler {
	return &generationHandler{
		generationService: generationService,
		validator:         validator,
	}
}

func (h *generationHandler) GenerateStory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.GenerateStoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateStory, err)
	}

	resp, err := h.generationService.GenerateStory(c.Context(), *req, userID)
	if err != nil {
		return generationError(c, domain.MessageFailedGenerateStory, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGenerateStory)
}

func (h *generationHandler) GenerateColoring(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.GenerateColoringRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateColoring, err)
	}

	resp, err := h.generationService.GenerateColoring(c.Context(), *req, userID)
	if err != nil {
		return generationError(c, domain.MessageFailedGenerateColoring, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGenerateColoring)
}

// Insufficient credits gets its own status so the client can open the
// purchase flow; everything else is a generic failure.
func generationError(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, domain.ErrInsufficientCredits) {
		return presenters.ErrorResponse(c, fiber.StatusPaymentRequired, message, err)
	}
	return presenters.ErrorResponse(c, fiber.StatusBadRequest, message, err)
}
