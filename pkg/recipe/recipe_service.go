package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"FreshFocus-Backend/domain"
	"FreshFocus-Backend/entities"
	"FreshFocus-Backend/pkg/gemini"
	"FreshFocus-Backend/pkg/pantry"
	"FreshFocus-Backend/pkg/preference"
)

type (
	// RecipeService owns each user's recipe collection. The collection is
	// session state: replaced wholesale by every successful generation,
	// never persisted.
	RecipeService interface {
		GenerateRecipes(ctx context.Context, req domain.GenerateRecipesRequest, userID string) (domain.RecipeListResponse, error)
		GetRecipes(ctx context.Context, userID string) (domain.RecipeListResponse, error)
	}

	recipeService struct {
		pantryService     pantry.PantryService
		preferenceService preference.PreferenceService
		gemini            gemini.Client

		mu          sync.Mutex
		collections map[string][]domain.Recipe
		busy        map[string]bool
	}
)

func NewRecipeService(pantryService pantry.PantryService, preferenceService preference.PreferenceService, geminiClient gemini.Client) RecipeService {
	return &recipeService{
		pantryService:     pantryService,
		preferenceService: preferenceService,
		gemini:            geminiClient,
		collections:       make(map[string][]domain.Recipe),
		busy:              make(map[string]bool),
	}
}

func (s *recipeService) GenerateRecipes(ctx context.Context, req domain.GenerateRecipesRequest, userID string) (domain.RecipeListResponse, error) {
	ingredients, err := s.pantryService.IngredientsForGeneration(ctx, req.FromSelection, userID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	if len(ingredients) == 0 {
		// precondition: no call is issued for an empty list
		return domain.RecipeListResponse{}, domain.ErrNoIngredients
	}

	s.mu.Lock()
	if s.busy[userID] {
		s.mu.Unlock()
		return domain.RecipeListResponse{}, domain.ErrGenerationInProgress
	}
	s.busy[userID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy[userID] = false
		s.mu.Unlock()
	}()

	prefs := s.preferenceService.GetPreferences(userID)
	prompt := buildPrompt(ingredients, prefs)

	responseText, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		// transport failure leaves the previous collection in place
		log.Printf("recipe generation failed for user %s: %v", userID, err)
		return domain.RecipeListResponse{}, err
	}

	// A reply that came back but does not parse replaces the collection
	// with an empty one, unlike the transport-error path above.
	recipes := parseRecipes(responseText)

	s.mu.Lock()
	s.collections[userID] = recipes
	s.mu.Unlock()

	return domain.RecipeListResponse{Recipes: recipes, Total: len(recipes)}, nil
}

func (s *recipeService) GetRecipes(_ context.Context, userID string) (domain.RecipeListResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes := s.collections[userID]
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return domain.RecipeListResponse{Recipes: recipes, Total: len(recipes)}, nil
}

func buildPrompt(ingredients []entities.Ingredient, prefs domain.UserPreferences) string {
	parts := make([]string, 0, len(ingredients))
	for _, item := range ingredients {
		parts = append(parts, fmt.Sprintf("%s (%g %s, %s status)", item.Name, item.Quantity, item.Unit, item.ExpiryRisk))
	}

	return fmt.Sprintf(
		"Based on these ingredients: %s. "+
			"User preferences: %s. Goal: %s. Tastes: %s. "+
			"Prioritize using ingredients marked as 'soon' or 'expired' to reduce waste. "+
			"Generate 3 healthy, balanced recipes. "+
			"Include health indicators (0-100) for protein, veggies, and carbs. "+
			"Return ONLY a valid JSON array of recipe objects with these fields: "+
			"id, name, description, ingredients (array of strings), instructions (array of strings), "+
			"prepTime, healthIndicators (object with protein, veggies, carbs), tags (array of strings). "+
			"No explanations or text outside the JSON array.",
		strings.Join(parts, ", "),
		strings.Join(prefs.DietaryRestrictions, ", "),
		prefs.FitnessGoal,
		strings.Join(prefs.Tastes, ", "),
	)
}

// parseRecipes decodes the model's reply. Malformed payloads yield an
// empty list rather than an error.
func parseRecipes(responseText string) []domain.Recipe {
	recipes := []domain.Recipe{}

	jsonText, ok := gemini.ExtractJSONArray(responseText)
	if !ok {
		return recipes
	}

	if err := json.Unmarshal([]byte(jsonText), &recipes); err != nil {
		log.Printf("failed to parse generated recipes, treating as empty: %v", err)
		return []domain.Recipe{}
	}

	for i := range recipes {
		if recipes[i].ID == "" {
			recipes[i].ID = uuid.New().String()
		}
		if recipes[i].Tags == nil {
			recipes[i].Tags = []string{}
		}
	}
	return recipes
}
