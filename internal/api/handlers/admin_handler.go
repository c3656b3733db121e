package handlers

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/internal/api/presenters"
	"Storybrush-Backend/pkg/admin"

	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		GetUsers(c *fiber.Ctx) error
		ExportUsers(c *fiber.Ctx) error
		SyncStores(c *fiber.Ctx) error
		DeleteUser(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService admin.AdminService
	}
)

func NewAdminHandler(adminService admin.AdminService) AdminHandler {
	return &adminHandler{
		adminService: adminService,
	}
}

func (h *adminHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.adminService.GetUsers(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAdminUsers, err)
	}

	return presenters.SuccessResponse(c, users, fiber.StatusOK, domain.MessageSuccessGetAdminUsers)
}

func (h *adminHandler) ExportUsers(c *fiber.Ctx) error {
	data, err := h.adminService.ExportUsersCSV(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExportUsers, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="users.csv"`)
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *adminHandler) SyncStores(c *fiber.Ctx) error {
	report, err := h.adminService.SyncStores(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedSyncStores, err)
	}

	return presenters.SuccessResponse(c, report, fiber.StatusOK, domain.MessageSuccessSyncStores)
}

func (h *adminHandler) DeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	if err := h.adminService.DeleteUser(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteUser, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteUser)
}
