package domain

import (
	"errors"
)

const (
	GoalNone        = "none"
	GoalHighProtein = "high-protein"
	GoalLowCarb     = "low-carb"
	GoalBalanced    = "balanced"
	GoalWeightLoss  = "weight-loss"
)

var (
	MessageSuccessGetPreferences    = "preferences retrieved successfully"
	MessageSuccessUpdateGoal        = "fitness goal updated"
	MessageSuccessToggleRestriction = "dietary restriction toggled"
	MessageSuccessUpdateTastes      = "tastes updated"

	MessageFailedGetPreferences    = "failed to retrieve preferences"
	MessageFailedUpdateGoal        = "failed to update fitness goal"
	MessageFailedToggleRestriction = "failed to toggle dietary restriction"
	MessageFailedUpdateTastes      = "failed to update tastes"

	ErrInvalidFitnessGoal = errors.New("unknown fitness goal")
)

type (
	UserPreferences struct {
		DietaryRestrictions []string `json:"dietary_restrictions"`
		FitnessGoal         string   `json:"fitness_goal"`
		Tastes              []string `json:"tastes"`
	}

	UpdateGoalRequest struct {
		FitnessGoal string `json:"fitness_goal" validate:"required"`
	}

	ToggleRestrictionRequest struct {
		Restriction string `json:"restriction" validate:"required"`
	}

	UpdateTastesRequest struct {
		Tastes []string `json:"tastes" validate:"required"`
	}
)
