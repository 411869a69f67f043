package pantry

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"FreshFocus-Backend/domain"
	"FreshFocus-Backend/entities"
)

// Assumed value of one consumed unit, used for the savings estimate on the
// dashboard.
const savingsPerUnit = 2.5

type (
	PantryService interface {
		AddIngredients(ctx context.Context, req domain.AddIngredientsRequest, userID string) ([]domain.IngredientResponse, error)
		GetIngredients(ctx context.Context, risk string, userID string) ([]domain.IngredientResponse, error)
		UseIngredient(ctx context.Context, id string, amount float64, userID string) error
		DecreaseIngredient(ctx context.Context, id string, userID string) error
		DeleteIngredient(ctx context.Context, id string, userID string) error
		SelectIngredient(ctx context.Context, id string, included bool, userID string) error
		GetSelectedIngredients(ctx context.Context, userID string) ([]domain.IngredientResponse, error)
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)

		// IngredientsForGeneration feeds the recipe service: either the
		// selected records or every visible one.
		IngredientsForGeneration(ctx context.Context, fromSelection bool, userID string) ([]entities.Ingredient, error)
	}

	pantryService struct {
		pantryRepository PantryRepository

		mu       sync.Mutex
		pantries map[string]*userPantry
	}

	// userPantry serializes mutations per user; an add or use completes,
	// persistence write included, before the next one runs.
	userPantry struct {
		mu        sync.Mutex
		store     *Store
		selection Selection
	}
)

func NewPantryService(pantryRepository PantryRepository) PantryService {
	return &pantryService{
		pantryRepository: pantryRepository,
		pantries:         make(map[string]*userPantry),
	}
}

// getPantry returns the in-memory pantry for the user, hydrating it from
// the persisted blob on first access. Missing or corrupt payloads fail
// soft as an empty store.
func (s *pantryService) getPantry(ctx context.Context, userID string) (*userPantry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pantries[userID]; ok {
		return p, nil
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var items []entities.Ingredient
	payload, err := s.pantryRepository.LoadBlob(ctx, userUUID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first session, nothing persisted yet
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal([]byte(payload), &items); err != nil {
			log.Printf("pantry blob for user %s is corrupt, starting empty: %v", userID, err)
			items = nil
		}
	}

	p := &userPantry{
		store:     NewStore(items),
		selection: NewSelection(),
	}
	s.pantries[userID] = p
	return p, nil
}

func (s *pantryService) persist(ctx context.Context, userID string, p *userPantry) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	payload, err := json.Marshal(p.store.Items())
	if err != nil {
		return err
	}

	if err := s.pantryRepository.SaveBlob(ctx, userUUID, string(payload)); err != nil {
		log.Printf("failed to persist pantry for user %s: %v", userID, err)
		return domain.ErrPantryPersist
	}
	return nil
}

func (s *pantryService) AddIngredients(ctx context.Context, req domain.AddIngredientsRequest, userID string) ([]domain.IngredientResponse, error) {
	p, err := s.getPantry(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	added := p.store.Add(req.Items, time.Now())
	if err := s.persist(ctx, userID, p); err != nil {
		return nil, err
	}

	return toResponses(added), nil
}

func (s *pantryService) GetIngredients(ctx context.Context, risk string, userID string) ([]domain.IngredientResponse, error) {
	p, err := s.getPantry(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	items := p.store.Visible()
	if risk != "" && risk != "all" {
		filtered := items[:0]
		for _, item := range items {
			if string(item.ExpiryRisk) == risk {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	return toResponses(items), nil
}

func (s *pantryService) UseIngredient(ctx context.Context, id string, amount float64, userID string) error {
	if amount <= 0 {
		return domain.ErrInvalidUseAmount
	}

	p, err := s.getPantry(ctx, userID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.store.Use(id, amount, time.Now()) {
		// unknown id is a silent no-op, nothing changed so nothing to persist
		return nil
	}
	return s.persist(ctx, userID, p)
}

func (s *pantryService) DecreaseIngredient(ctx context.Context, id string, userID string) error {
	return s.UseIngredient(ctx, id, 1, userID)
}

func (s *pantryService) DeleteIngredient(ctx context.Context, id string, userID string) error {
	p, err := s.getPantry(ctx, userID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.store.Delete(id) {
		return nil
	}
	p.selection.Select(id, false)
	return s.persist(ctx, userID, p)
}

func (s *pantryService) SelectIngredient(ctx context.Context, id string, included bool, userID string) error {
	p, err := s.getPantry(ctx, userID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.selection.Select(id, included)
	return nil
}

func (s *pantryService) GetSelectedIngredients(ctx context.Context, userID string) ([]domain.IngredientResponse, error) {
	p, err := s.getPantry(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return toResponses(s.selectedLocked(p)), nil
}

func (s *pantryService) selectedLocked(p *userPantry) []entities.Ingredient {
	items := make([]entities.Ingredient, 0, p.selection.Len())
	for _, item := range p.store.Visible() {
		if p.selection.Has(item.ID) {
			items = append(items, item)
		}
	}
	return items
}

func (s *pantryService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	p, err := s.getPantry(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	stats := domain.DashboardStatsResponse{}
	for _, item := range p.store.Items() {
		stats.TotalUsed += item.OriginalQuantity - item.Quantity
		if item.Quantity <= 0 {
			continue
		}
		stats.TotalItems++
		switch item.ExpiryRisk {
		case entities.RiskFresh:
			stats.FreshItems++
		case entities.RiskSoon:
			stats.SoonItems++
		case entities.RiskExpired:
			stats.ExpiredItems++
			stats.WastedItems++
		}
	}
	stats.EstimatedSave = stats.TotalUsed * savingsPerUnit

	return stats, nil
}

func (s *pantryService) IngredientsForGeneration(ctx context.Context, fromSelection bool, userID string) ([]entities.Ingredient, error) {
	p, err := s.getPantry(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if fromSelection {
		return s.selectedLocked(p), nil
	}
	return p.store.Visible(), nil
}

func toResponses(items []entities.Ingredient) []domain.IngredientResponse {
	response := make([]domain.IngredientResponse, 0, len(items))
	for _, item := range items {
		response = append(response, domain.IngredientResponse{
			ID:                item.ID,
			Name:              item.Name,
			Category:          item.Category,
			AddedDate:         item.AddedDate,
			Quantity:          item.Quantity,
			OriginalQuantity:  item.OriginalQuantity,
			Unit:              item.Unit,
			EstimatedDaysLeft: item.EstimatedDaysLeft,
			ExpiryRisk:        item.ExpiryRisk,
		})
	}
	return response
}
