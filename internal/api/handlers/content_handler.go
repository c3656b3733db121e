package handlers

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/internal/api/presenters"
	"Storybrush-Backend/pkg/content"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ContentHandler interface {
		GetUserContent(c *fiber.Ctx) error
		ToggleFavorite(c *fiber.Ctx) error
		DeleteContent(c *fiber.Ctx) error
		ExportContent(c *fiber.Ctx) error
	}

	contentHandler struct {
		contentService content.ContentService
		validator      *validator.Validate
	}
)

func NewContentHandler(contentService content.ContentService, validator *validator.Validate) ContentHandler {
	return &contentHandler{
		contentService: contentService,
		validator:      validator,
	}
}

func (h *contentHandler) GetUserContent(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	items, count, err := h.contentService.GetUserContent(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetContent, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"content": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetContent)
}

func (h *contentHandler) ToggleFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	contentID := c.Params("id")

	item, err := h.contentService.ToggleFavorite(c.Context(), contentID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFavoriteContent, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessFavoriteContent)
}

func (h *contentHandler) DeleteContent(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	contentID := c.Params("id")

	if err := h.contentService.DeleteContentItem(c.Context(), contentID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteContent, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteContent)
}

func (h *contentHandler) ExportContent(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	contentID := c.Params("id")

	resp, err := h.contentService.ExportContentItem(c.Context(), contentID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExportContent, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessExportContent)
}
