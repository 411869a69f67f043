package domain

import (
	"errors"
)

var (
	MessageSuccessGenerateRecipes = "recipes generated successfully"
	MessageSuccessGetRecipes      = "recipes retrieved successfully"

	MessageFailedGenerateRecipes = "failed to generate recipes"
	MessageFailedGetRecipes      = "failed to retrieve recipes"

	ErrNoIngredients          = errors.New("no ingredients available for recipe generation")
	ErrGenerationInProgress   = errors.New("recipe generation already in progress")
	ErrGeminiProcessingFailed = errors.New("gemini processing failed")
)

type (
	GenerateRecipesRequest struct {
		FromSelection bool `json:"from_selection"`
	}

	HealthIndicators struct {
		Protein int `json:"protein"`
		Veggies int `json:"veggies"`
		Carbs   int `json:"carbs"`
	}

	Recipe struct {
		ID               string           `json:"id"`
		Name             string           `json:"name"`
		Description      string           `json:"description"`
		Ingredients      []string         `json:"ingredients"`
		Instructions     []string         `json:"instructions"`
		PrepTime         string           `json:"prepTime"`
		HealthIndicators HealthIndicators `json:"healthIndicators"`
		Tags             []string         `json:"tags"`
	}

	RecipeListResponse struct {
		Recipes []Recipe `json:"recipes"`
		Total   int      `json:"total"`
	}
)
