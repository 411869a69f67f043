package entities

import (
	"time"
)

type ExpiryRisk string

const (
	RiskFresh   ExpiryRisk = "fresh"
	RiskSoon    ExpiryRisk = "soon"
	RiskExpired ExpiryRisk = "expired"
)

// Ingredient is the unit of the pantry store. It is not a database table:
// the whole per-user collection is serialized as one JSON document (see
// entities.PantryBlob). ExpiryRisk is derived from EstimatedDaysLeft and is
// recomputed by pantry.ClassifyExpiry whenever the day count changes.
type Ingredient struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Category          string       `json:"category"`
	AddedDate         time.Time    `json:"added_date"`
	Quantity          float64      `json:"quantity"`
	OriginalQuantity  float64      `json:"original_quantity"`
	Unit              string       `json:"unit"`
	EstimatedDaysLeft int          `json:"estimated_days_left"`
	ExpiryRisk        ExpiryRisk   `json:"expiry_risk"`
	UsageHistory      []UsageEvent `json:"usage_history,omitempty"`
}

type UsageEvent struct {
	UsedAmount float64   `json:"used_amount"`
	UsedDate   time.Time `json:"used_date"`
}
