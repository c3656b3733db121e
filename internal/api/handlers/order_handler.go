package handlers

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/internal/api/presenters"
	"Storybrush-Backend/pkg/order"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	OrderHandler interface {
		Checkout(c *fiber.Ctx) error
		VerifyOrder(c *fiber.Ctx) error
		GetUserOrders(c *fiber.Ctx) error
		MidtransWebhookHandler(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}

	midtransNotification struct {
		OrderID string `json:"order_id"`
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

func (h *orderHandler) Checkout(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CheckoutRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	resp, err := h.orderService.Checkout(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessCheckout)
}

func (h *orderHandler) VerifyOrder(c *fiber.Ctx) error {
	orderID := c.Query("order_id")
	if orderID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyOrder, domain.ErrInvalidOrder)
	}

	status, err := h.orderService.VerifyOrder(c.Context(), orderID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyOrder, err)
	}

	return presenters.SuccessResponse(c, status, fiber.StatusOK, domain.MessageSuccessVerifyOrder)
}

func (h *orderHandler) GetUserOrders(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	orders, err := h.orderService.GetUserOrders(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, orders, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) MidtransWebhookHandler(c *fiber.Ctx) error {
	notification := new(midtransNotification)
	if err := c.BodyParser(notification); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	orderID := notification.OrderID
	if orderID == "" {
		orderID = c.Query("order_id")
	}
	if orderID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWebhook, domain.ErrInvalidOrder)
	}

	if err := h.orderService.HandlePaymentNotification(c.Context(), orderID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWebhook, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
}
