package pantry

import (
	"time"

	"github.com/google/uuid"

	"FreshFocus-Backend/domain"
	"FreshFocus-Backend/entities"
)

const (
	DefaultName     = "Unknown"
	DefaultCategory = "General"
	DefaultUnit     = "pcs"
	DefaultDaysLeft = 7
)

// Store is one user's ordered ingredient collection, most recently added
// first. It is a plain in-memory structure; the owning service serializes
// access and persists the full item list after every mutation.
type Store struct {
	items []entities.Ingredient
}

func NewStore(items []entities.Ingredient) *Store {
	return &Store{items: items}
}

// Add materializes the proposed items and prepends them, preserving their
// input order ahead of everything already present. Missing fields get
// defaults instead of errors; an explicit expiry date wins over a supplied
// day count.
func (s *Store) Add(reqs []domain.AddIngredientRequest, now time.Time) []entities.Ingredient {
	processed := make([]entities.Ingredient, 0, len(reqs))
	for _, req := range reqs {
		qty := 1.0
		if req.Quantity != nil && *req.Quantity > 0 {
			qty = *req.Quantity
		}

		daysLeft := DefaultDaysLeft
		if req.EstimatedDaysLeft != nil {
			daysLeft = *req.EstimatedDaysLeft
		}
		if req.ExpiryDate != "" {
			if target, err := time.Parse("2006-01-02", req.ExpiryDate); err == nil {
				daysLeft = DaysLeftUntil(target, now.UTC())
			}
		}

		name := req.Name
		if name == "" {
			name = DefaultName
		}
		category := req.Category
		if category == "" {
			category = DefaultCategory
		}
		unit := req.Unit
		if unit == "" {
			unit = DefaultUnit
		}

		processed = append(processed, entities.Ingredient{
			ID:                uuid.New().String(),
			Name:              name,
			Category:          category,
			AddedDate:         now,
			Quantity:          qty,
			OriginalQuantity:  qty,
			Unit:              unit,
			EstimatedDaysLeft: daysLeft,
			ExpiryRisk:        ClassifyExpiry(daysLeft),
		})
	}

	s.items = append(processed, s.items...)
	return processed
}

// Use decrements the matching record's quantity, floored at zero, and
// appends a usage event. Days left and risk are untouched. Returns false
// when the id is unknown; callers treat that as a silent no-op.
func (s *Store) Use(id string, amount float64, now time.Time) bool {
	if amount <= 0 {
		return false
	}
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		used := amount
		if used > s.items[i].Quantity {
			used = s.items[i].Quantity
		}
		s.items[i].Quantity -= used
		s.items[i].UsageHistory = append(s.items[i].UsageHistory, entities.UsageEvent{
			UsedAmount: amount,
			UsedDate:   now,
		})
		return true
	}
	return false
}

// Delete removes the record with the given id; unknown ids are a no-op.
func (s *Store) Delete(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Get(id string) (entities.Ingredient, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return entities.Ingredient{}, false
}

// Items returns the full collection, consumed records included.
func (s *Store) Items() []entities.Ingredient {
	out := make([]entities.Ingredient, len(s.items))
	copy(out, s.items)
	return out
}

// Visible returns records with remaining quantity. Fully consumed items
// stay in the store for waste statistics but never show up here.
func (s *Store) Visible() []entities.Ingredient {
	out := make([]entities.Ingredient, 0, len(s.items))
	for _, item := range s.items {
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}
