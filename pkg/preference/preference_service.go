package preference

import (
	"sync"

	"FreshFocus-Backend/domain"
)

var validGoals = map[string]bool{
	domain.GoalNone:        true,
	domain.GoalHighProtein: true,
	domain.GoalLowCarb:     true,
	domain.GoalBalanced:    true,
	domain.GoalWeightLoss:  true,
}

type (
	// PreferenceService keeps per-user recipe preferences. They live in
	// memory only and reset on restart.
	PreferenceService interface {
		GetPreferences(userID string) domain.UserPreferences
		UpdateGoal(req domain.UpdateGoalRequest, userID string) (domain.UserPreferences, error)
		ToggleRestriction(req domain.ToggleRestrictionRequest, userID string) domain.UserPreferences
		UpdateTastes(req domain.UpdateTastesRequest, userID string) domain.UserPreferences
	}

	preferenceService struct {
		mu          sync.Mutex
		preferences map[string]*domain.UserPreferences
	}
)

func NewPreferenceService() PreferenceService {
	return &preferenceService{
		preferences: make(map[string]*domain.UserPreferences),
	}
}

func (s *preferenceService) get(userID string) *domain.UserPreferences {
	if p, ok := s.preferences[userID]; ok {
		return p
	}
	p := &domain.UserPreferences{
		DietaryRestrictions: []string{},
		FitnessGoal:         domain.GoalBalanced,
		Tastes:              []string{},
	}
	s.preferences[userID] = p
	return p
}

func (s *preferenceService) GetPreferences(userID string) domain.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.get(userID)
}

func (s *preferenceService) UpdateGoal(req domain.UpdateGoalRequest, userID string) (domain.UserPreferences, error) {
	if !validGoals[req.FitnessGoal] {
		return domain.UserPreferences{}, domain.ErrInvalidFitnessGoal
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.get(userID)
	p.FitnessGoal = req.FitnessGoal
	return *p, nil
}

func (s *preferenceService) ToggleRestriction(req domain.ToggleRestrictionRequest, userID string) domain.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.get(userID)
	for i, r := range p.DietaryRestrictions {
		if r == req.Restriction {
			p.DietaryRestrictions = append(p.DietaryRestrictions[:i], p.DietaryRestrictions[i+1:]...)
			return *p
		}
	}
	p.DietaryRestrictions = append(p.DietaryRestrictions, req.Restriction)
	return *p
}

func (s *preferenceService) UpdateTastes(req domain.UpdateTastesRequest, userID string) domain.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.get(userID)
	p.Tastes = req.Tastes
	return *p
}
