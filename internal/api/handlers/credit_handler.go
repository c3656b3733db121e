package handlers

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/internal/api/presenters"
	"Storybrush-Backend/pkg/credit"
	"Storybrush-Backend/pkg/discount"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CreditHandler interface {
		GetCreditPackages(c *fiber.Ctx) error
		GetUserCredits(c *fiber.Ctx) error
		ValidateDiscount(c *fiber.Ctx) error
	}

	creditHandler struct {
		creditService   credit.CreditService
		discountService discount.DiscountService
		validator       *validator.Validate
	}
)

func NewCreditHandler(creditService credit.CreditService, discountService discount.DiscountService, validator *validator.Validate) CreditHandler {
	return &creditHandler{
		creditService:   creditService,
		discountService: discountService,
		validator:       validator,
	}
}

func (h *creditHandler) GetCreditPackages(c *fiber.Ctx) error {
	packages := h.creditService.GetCreditPackages(c.Context())
	return presenters.SuccessResponse(c, packages, fiber.StatusOK, domain.MessageSuccessGetCreditPackages)
}

func (h *creditHandler) GetUserCredits(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	credits, err := h.creditService.GetUserCredits(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetUserCredits, err)
	}

	return presenters.SuccessResponse(c, credits, fiber.StatusOK, domain.MessageSuccessGetUserCredits)
}

func (h *creditHandler) ValidateDiscount(c *fiber.Ctx) error {
	req := new(domain.ValidateDiscountRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidateDiscount, err)
	}

	pkg := domain.CreditPackageByID(req.PackageID)
	if pkg == nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidateDiscount, domain.ErrInvalidCreditPackage)
	}

	quote, err := h.discountService.Quote(c.Context(), req.Code, pkg.Price)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidateDiscount, err)
	}

	return presenters.SuccessResponse(c, quote, fiber.StatusOK, domain.MessageSuccessValidateDiscount)
}
