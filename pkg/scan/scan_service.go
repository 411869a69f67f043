package scan

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"FreshFocus-Backend/domain"
	"FreshFocus-Backend/internal/utils/storage"
	"FreshFocus-Backend/pkg/gemini"
	"FreshFocus-Backend/pkg/pantry"
)

const analyzePrompt = "Analyze this fridge photo. List all visible ingredients. " +
	"For each, estimate the quantity and how many days it likely has left before expiring " +
	"(based on typical shelf life). Return ONLY a JSON array of objects with 'name', " +
	"'quantity', and 'estimatedDaysLeft'. 'name' and 'quantity' are strings, " +
	"'estimatedDaysLeft' is a number. No explanations, no markdown."

type (
	// ScanService stages proposed ingredients between an image-analysis
	// call and the user's confirmation. One session per user: no session
	// means idle, an existing session means the results are under review.
	// Save hands the staged items to the pantry's add operation; Cancel
	// discards them. Either way the session ends.
	ScanService interface {
		AnalyzeImage(ctx context.Context, req domain.AnalyzeImageRequest, userID string) (domain.ScanSessionResponse, error)
		GetSession(ctx context.Context, userID string) (domain.ScanSessionResponse, error)
		EditItem(ctx context.Context, index int, req domain.EditScannedItemRequest, userID string) (domain.ScannedItem, error)
		SaveItems(ctx context.Context, userID string) ([]domain.IngredientResponse, error)
		CancelScan(ctx context.Context, userID string) error
	}

	scanService struct {
		pantryService pantry.PantryService
		gemini        gemini.Client
		s3            storage.AwsS3

		mu       sync.Mutex
		sessions map[string]*scanSession
	}

	scanSession struct {
		imageURL string
		items    []domain.ScannedItem
	}

	// rawScanItem mirrors the vision model's contract: quantity is a
	// string, days left a number.
	rawScanItem struct {
		Name              string  `json:"name"`
		Quantity          string  `json:"quantity"`
		EstimatedDaysLeft float64 `json:"estimatedDaysLeft"`
	}
)

func NewScanService(pantryService pantry.PantryService, geminiClient gemini.Client, s3 storage.AwsS3) ScanService {
	return &scanService{
		pantryService: pantryService,
		gemini:        geminiClient,
		s3:            s3,
		sessions:      make(map[string]*scanSession),
	}
}

func (s *scanService) AnalyzeImage(ctx context.Context, req domain.AnalyzeImageRequest, userID string) (domain.ScanSessionResponse, error) {
	if req.Image == "" {
		return domain.ScanSessionResponse{}, domain.ErrEmptyImage
	}

	imageURL := s.archiveSnapshot(req.Image, userID)

	responseText, err := s.gemini.GenerateFromImage(ctx, req.Image, "image/jpeg", analyzePrompt)
	if err != nil {
		// transport failure: stay idle, the user retries manually
		return domain.ScanSessionResponse{}, err
	}

	items := parseScanResults(responseText)

	s.mu.Lock()
	s.sessions[userID] = &scanSession{imageURL: imageURL, items: items}
	s.mu.Unlock()

	return domain.ScanSessionResponse{
		State:    "reviewing",
		ImageURL: imageURL,
		Items:    items,
	}, nil
}

// archiveSnapshot stores the captured frame for later reference. Archive
// failures are logged and ignored; analysis does not depend on them.
func (s *scanService) archiveSnapshot(base64Image string, userID string) string {
	data, err := base64.StdEncoding.DecodeString(base64Image)
	if err != nil {
		log.Printf("scan snapshot for user %s is not valid base64: %v", userID, err)
		return ""
	}

	fileName := fmt.Sprintf("scan-%s.jpg", uuid.New().String())
	objectKey, err := s.s3.UploadBytes(fileName, data, "scans", "image/jpeg")
	if err != nil {
		log.Printf("failed to archive scan snapshot for user %s: %v", userID, err)
		return ""
	}
	return s.s3.GetPublicLinkKey(objectKey)
}

// parseScanResults turns the model's reply into staged items. Anything
// unparseable yields an empty list, never an error.
func parseScanResults(responseText string) []domain.ScannedItem {
	items := []domain.ScannedItem{}

	jsonText, ok := gemini.ExtractJSONArray(responseText)
	if !ok {
		return items
	}

	var raw []rawScanItem
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		log.Printf("failed to parse scan results, treating as empty: %v", err)
		return items
	}

	for _, r := range raw {
		daysLeft := int(r.EstimatedDaysLeft)
		items = append(items, domain.ScannedItem{
			Name:              r.Name,
			Quantity:          r.Quantity,
			Unit:              pantry.DefaultUnit,
			EstimatedDaysLeft: daysLeft,
			ExpiryRisk:        string(pantry.ClassifyExpiry(daysLeft)),
		})
	}
	return items
}

func (s *scanService) GetSession(_ context.Context, userID string) (domain.ScanSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return domain.ScanSessionResponse{State: "idle", Items: []domain.ScannedItem{}}, nil
	}
	return domain.ScanSessionResponse{
		State:    "reviewing",
		ImageURL: session.imageURL,
		Items:    session.items,
	}, nil
}

func (s *scanService) EditItem(_ context.Context, index int, req domain.EditScannedItemRequest, userID string) (domain.ScannedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return domain.ScannedItem{}, domain.ErrNoActiveScan
	}
	if index < 0 || index >= len(session.items) {
		return domain.ScannedItem{}, domain.ErrScanItemNotFound
	}

	item := &session.items[index]
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.ExpiryDate != nil {
		target, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return domain.ScannedItem{}, err
		}
		item.EstimatedDaysLeft = pantry.DaysLeftUntil(target, time.Now().UTC())
		item.ExpiryRisk = string(pantry.ClassifyExpiry(item.EstimatedDaysLeft))
	}

	return *item, nil
}

func (s *scanService) SaveItems(ctx context.Context, userID string) ([]domain.IngredientResponse, error) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrNoActiveScan
	}
	delete(s.sessions, userID)
	s.mu.Unlock()

	reqs := make([]domain.AddIngredientRequest, 0, len(session.items))
	for _, item := range session.items {
		item := item
		reqs = append(reqs, domain.AddIngredientRequest{
			Name:              item.Name,
			Quantity:          coerceQuantity(item.Quantity),
			Unit:              item.Unit,
			EstimatedDaysLeft: &item.EstimatedDaysLeft,
		})
	}

	if len(reqs) == 0 {
		return []domain.IngredientResponse{}, nil
	}

	return s.pantryService.AddIngredients(ctx, domain.AddIngredientsRequest{Items: reqs}, userID)
}

func (s *scanService) CancelScan(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

// coerceQuantity reads a number out of the vision model's free-text
// quantity ("2", "2 pcs", "Half full"). Unparseable values fall back to
// the store's default of one.
func coerceQuantity(quantity string) *float64 {
	var qty float64
	if _, err := fmt.Sscanf(quantity, "%g", &qty); err != nil || qty <= 0 {
		return nil
	}
	return &qty
}
