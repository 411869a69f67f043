package recipe

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"FreshFocus-Backend/domain"
	"FreshFocus-Backend/pkg/pantry"
	"FreshFocus-Backend/pkg/preference"
)

type fakeGemini struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGemini) GenerateFromImage(_ context.Context, _ string, _ string, prompt string) (string, error) {
	return f.GenerateText(context.Background(), prompt)
}

type memoryRepository struct {
	mu    sync.Mutex
	blobs map[uuid.UUID]string
}

func (r *memoryRepository) SaveBlob(_ context.Context, userID uuid.UUID, payload string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[userID] = payload
	return nil
}

func (r *memoryRepository) LoadBlob(_ context.Context, userID uuid.UUID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payload, ok := r.blobs[userID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return payload, nil
}

const recipesReply = `[
	{
		"name": "Spinach Omelette",
		"description": "Quick way to use eggs and greens.",
		"ingredients": ["2 eggs", "a handful of spinach"],
		"instructions": ["Whisk the eggs.", "Fold in spinach and cook."],
		"prepTime": "10 min",
		"healthIndicators": {"protein": 70, "veggies": 40, "carbs": 10},
		"tags": ["breakfast"]
	}
]`

func newTestService(gemini *fakeGemini) (RecipeService, pantry.PantryService, preference.PreferenceService) {
	pantryService := pantry.NewPantryService(&memoryRepository{blobs: make(map[uuid.UUID]string)})
	preferenceService := preference.NewPreferenceService()
	return NewRecipeService(pantryService, preferenceService, gemini), pantryService, preferenceService
}

func addIngredient(t *testing.T, pantryService pantry.PantryService, userID, name string) {
	t.Helper()
	_, err := pantryService.AddIngredients(context.Background(), domain.AddIngredientsRequest{
		Items: []domain.AddIngredientRequest{{Name: name}},
	}, userID)
	require.NoError(t, err)
}

func TestGenerateRecipes(t *testing.T) {
	gemini := &fakeGemini{response: recipesReply}
	service, pantryService, _ := newTestService(gemini)
	userID := uuid.New().String()

	addIngredient(t, pantryService, userID, "Eggs")
	addIngredient(t, pantryService, userID, "Spinach")

	res, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{}, userID)
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)

	got := res.Recipes[0]
	assert.Equal(t, "Spinach Omelette", got.Name)
	assert.NotEmpty(t, got.ID) // filled in when the model omits it
	assert.Equal(t, 70, got.HealthIndicators.Protein)

	// the collection is readable afterwards
	list, err := service.GetRecipes(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, res.Recipes, list.Recipes)
}

func TestGenerateRecipesEmptyPantrySkipsCall(t *testing.T) {
	gemini := &fakeGemini{response: recipesReply}
	service, _, _ := newTestService(gemini)

	_, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNoIngredients)
	assert.Equal(t, 0, gemini.calls)
}

func TestGenerateRecipesEmptySelectionSkipsCall(t *testing.T) {
	gemini := &fakeGemini{response: recipesReply}
	service, pantryService, _ := newTestService(gemini)
	userID := uuid.New().String()

	addIngredient(t, pantryService, userID, "Eggs")

	// pantry has items but nothing is selected
	_, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{FromSelection: true}, userID)
	assert.ErrorIs(t, err, domain.ErrNoIngredients)
	assert.Equal(t, 0, gemini.calls)
}

func TestGenerateRecipesTransportErrorKeepsCollection(t *testing.T) {
	gemini := &fakeGemini{response: recipesReply}
	service, pantryService, _ := newTestService(gemini)
	userID := uuid.New().String()

	addIngredient(t, pantryService, userID, "Eggs")

	_, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{}, userID)
	require.NoError(t, err)

	gemini.err = errors.New("network down")
	_, err = service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{}, userID)
	require.Error(t, err)

	// the previous collection survives a failed call
	list, err := service.GetRecipes(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list.Recipes, 1)

	// and the busy flag was released
	gemini.err = nil
	_, err = service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{}, userID)
	assert.NoError(t, err)
}

func TestGenerateRecipesUnparseableReplyClearsCollection(t *testing.T) {
	gemini := &fakeGemini{response: recipesReply}
	service, pantryService, _ := newTestService(gemini)
	userID := uuid.New().String()

	addIngredient(t, pantryService, userID, "Eggs")

	_, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{}, userID)
	require.NoError(t, err)

	// a reply that arrives but does not parse replaces the collection
	// with an empty one
	gemini.response = "Sorry, I cannot help with that."
	res, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{}, userID)
	require.NoError(t, err)
	assert.Empty(t, res.Recipes)

	list, err := service.GetRecipes(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, list.Recipes)
}

func TestGenerateRecipesPromptCarriesPreferences(t *testing.T) {
	gemini := &fakeGemini{response: recipesReply}
	service, pantryService, preferenceService := newTestService(gemini)
	userID := uuid.New().String()

	addIngredient(t, pantryService, userID, "Eggs")

	_, err := preferenceService.UpdateGoal(domain.UpdateGoalRequest{FitnessGoal: domain.GoalHighProtein}, userID)
	require.NoError(t, err)
	preferenceService.ToggleRestriction(domain.ToggleRestrictionRequest{Restriction: "vegetarian"}, userID)

	_, err = service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{}, userID)
	require.NoError(t, err)

	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "Eggs")
	assert.Contains(t, gemini.prompts[0], "high-protein")
	assert.Contains(t, gemini.prompts[0], "vegetarian")
}

func TestGetRecipesEmptyByDefault(t *testing.T) {
	service, _, _ := newTestService(&fakeGemini{})

	list, err := service.GetRecipes(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.NotNil(t, list.Recipes)
	assert.Empty(t, list.Recipes)
	assert.Equal(t, 0, list.Total)
}
