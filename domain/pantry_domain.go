package domain

import (
	"errors"
	"time"

	"FreshFocus-Backend/entities"
)

var (
	MessageSuccessAddIngredients    = "ingredients added successfully"
	MessageSuccessUseIngredient     = "ingredient usage recorded"
	MessageSuccessDeleteIngredient  = "ingredient deleted successfully"
	MessageSuccessGetIngredients    = "ingredients retrieved successfully"
	MessageSuccessSelectIngredient  = "selection updated"
	MessageSuccessGetSelection      = "selected ingredients retrieved successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedAddIngredients    = "failed to add ingredients"
	MessageFailedUseIngredient     = "failed to record ingredient usage"
	MessageFailedDeleteIngredient  = "failed to delete ingredient"
	MessageFailedGetIngredients    = "failed to retrieve ingredients"
	MessageFailedSelectIngredient  = "failed to update selection"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	ErrInvalidUseAmount = errors.New("use amount must be positive")
	ErrPantryPersist    = errors.New("failed to persist pantry")
)

type (
	// AddIngredientRequest carries one proposed ingredient. Every field is
	// optional; the store substitutes defaults rather than rejecting input.
	AddIngredientRequest struct {
		Name              string   `json:"name"`
		Category          string   `json:"category"`
		Quantity          *float64 `json:"quantity"`
		Unit              string   `json:"unit"`
		EstimatedDaysLeft *int     `json:"estimated_days_left"`
		ExpiryDate        string   `json:"expiry_date"` // YYYY-MM-DD, wins over estimated_days_left when set
	}

	AddIngredientsRequest struct {
		Items []AddIngredientRequest `json:"items" validate:"required,min=1,dive"`
	}

	UseIngredientRequest struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}

	SelectIngredientRequest struct {
		Included bool `json:"included"`
	}

	IngredientResponse struct {
		ID                string              `json:"id"`
		Name              string              `json:"name"`
		Category          string              `json:"category"`
		AddedDate         time.Time           `json:"added_date"`
		Quantity          float64             `json:"quantity"`
		OriginalQuantity  float64             `json:"original_quantity"`
		Unit              string              `json:"unit"`
		EstimatedDaysLeft int                 `json:"estimated_days_left"`
		ExpiryRisk        entities.ExpiryRisk `json:"expiry_risk"`
	}

	DashboardStatsResponse struct {
		TotalItems    int     `json:"total_items"`
		FreshItems    int     `json:"fresh_items"`
		SoonItems     int     `json:"soon_items"`
		ExpiredItems  int     `json:"expired_items"`
		TotalUsed     float64 `json:"total_used"`
		WastedItems   int     `json:"wasted_items"`
		EstimatedSave float64 `json:"estimated_savings"`
	}
)
