package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"FreshFocus-Backend/domain"
	"FreshFocus-Backend/internal/api/presenters"
	"FreshFocus-Backend/pkg/recipe"
)

type (
	RecipeHandler interface {
		GenerateRecipes(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GenerateRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.GenerateRecipesRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.GenerateRecipes(c.Context(), *req, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoIngredients):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateRecipes, err)
		case errors.Is(err, domain.ErrGenerationInProgress):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedGenerateRecipes, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedGenerateRecipes, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGenerateRecipes)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.GetRecipes(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}
