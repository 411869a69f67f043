package domain

import (
	"errors"
)

var (
	MessageSuccessAnalyzeImage   = "fridge image analyzed successfully"
	MessageSuccessGetScanSession = "scan session retrieved successfully"
	MessageSuccessEditScanItem   = "scanned item updated"
	MessageSuccessSaveScanItems  = "scanned items saved successfully"
	MessageSuccessCancelScan     = "scan discarded"

	MessageFailedAnalyzeImage   = "failed to analyze fridge image"
	MessageFailedGetScanSession = "failed to retrieve scan session"
	MessageFailedEditScanItem   = "failed to update scanned item"
	MessageFailedSaveScanItems  = "failed to save scanned items"
	MessageFailedCancelScan     = "failed to discard scan"

	ErrNoActiveScan     = errors.New("no scan is awaiting review")
	ErrScanItemNotFound = errors.New("scanned item index out of range")
	ErrEmptyImage       = errors.New("image payload is empty")
)

type (
	AnalyzeImageRequest struct {
		// Base64-encoded JPEG frame, without the data URL prefix.
		Image string `json:"image" validate:"required"`
	}

	// ScannedItem is one row of the review buffer. Quantity arrives from the
	// vision model as a string and is coerced on save.
	ScannedItem struct {
		Name              string `json:"name"`
		Quantity          string `json:"quantity"`
		Unit              string `json:"unit"`
		EstimatedDaysLeft int    `json:"estimated_days_left"`
		ExpiryRisk        string `json:"expiry_risk"`
	}

	EditScannedItemRequest struct {
		Name       *string `json:"name"`
		Quantity   *string `json:"quantity"`
		Unit       *string `json:"unit"`
		ExpiryDate *string `json:"expiry_date"` // YYYY-MM-DD, recomputes days left
	}

	ScanSessionResponse struct {
		State    string        `json:"state"` // "idle" or "reviewing"
		ImageURL string        `json:"image_url,omitempty"`
		Items    []ScannedItem `json:"items"`
	}
)
