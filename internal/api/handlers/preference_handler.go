package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"FreshFocus-Backend/domain"
	"FreshFocus-Backend/internal/api/presenters"
	"FreshFocus-Backend/pkg/preference"
)

type (
	PreferenceHandler interface {
		GetPreferences(c *fiber.Ctx) error
		UpdateGoal(c *fiber.Ctx) error
		ToggleRestriction(c *fiber.Ctx) error
		UpdateTastes(c *fiber.Ctx) error
	}

	preferenceHandler struct {
		preferenceService preference.PreferenceService
		validator         *validator.Validate
	}
)

func NewPreferenceHandler(preferenceService preference.PreferenceService, validator *validator.Validate) PreferenceHandler {
	return &preferenceHandler{
		preferenceService: preferenceService,
		validator:         validator,
	}
}

func (h *preferenceHandler) GetPreferences(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res := h.preferenceService.GetPreferences(userID)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPreferences)
}

func (h *preferenceHandler) UpdateGoal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateGoalRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateGoal, err)
	}

	res, err := h.preferenceService.UpdateGoal(*req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateGoal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateGoal)
}

func (h *preferenceHandler) ToggleRestriction(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ToggleRestrictionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleRestriction, err)
	}

	res := h.preferenceService.ToggleRestriction(*req, userID)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleRestriction)
}

func (h *preferenceHandler) UpdateTastes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateTastesRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTastes, err)
	}

	res := h.preferenceService.UpdateTastes(*req, userID)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateTastes)
}
