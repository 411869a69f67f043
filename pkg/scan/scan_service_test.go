package scan

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"FreshFocus-Backend/domain"
	"FreshFocus-Backend/pkg/pantry"
)

type fakeGemini struct {
	response string
	err      error
	calls    int
}

func (f *fakeGemini) GenerateText(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeGemini) GenerateFromImage(_ context.Context, _ string, _ string, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

type fakeS3 struct {
	uploads int
	fail    bool
}

func (f *fakeS3) UploadBytes(fileName string, _ []byte, folder string, _ string) (string, error) {
	if f.fail {
		return "", errors.New("upload refused")
	}
	f.uploads++
	return folder + "/" + fileName, nil
}

func (f *fakeS3) DeleteFile(string) error { return nil }

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.test.amazonaws.com/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(string) string { return "" }

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

func newTestService(gemini *fakeGemini) (ScanService, pantry.PantryService, *fakeS3) {
	pantryService := pantry.NewPantryService(&memoryRepository{blobs: make(map[uuid.UUID]string)})
	s3 := &fakeS3{}
	return NewScanService(pantryService, gemini, s3), pantryService, s3
}

func testImage() string {
	return base64.StdEncoding.EncodeToString([]byte("fake jpeg bytes"))
}

func TestAnalyzeImageOpensReview(t *testing.T) {
	gemini := &fakeGemini{response: `[
		{"name": "Milk", "quantity": "1", "estimatedDaysLeft": 3},
		{"name": "Eggs", "quantity": "6 pcs", "estimatedDaysLeft": 14}
	]`}
	service, _, s3 := newTestService(gemini)
	userID := uuid.New().String()

	res, err := service.AnalyzeImage(context.Background(), domain.AnalyzeImageRequest{Image: testImage()}, userID)
	require.NoError(t, err)

	assert.Equal(t, "reviewing", res.State)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Milk", res.Items[0].Name)
	assert.Equal(t, "soon", res.Items[0].ExpiryRisk)
	assert.Equal(t, "fresh", res.Items[1].ExpiryRisk)
	assert.Equal(t, 1, s3.uploads)
	assert.NotEmpty(t, res.ImageURL)
}

func TestAnalyzeImageEmptyPayload(t *testing.T) {
	service, _, _ := newTestService(&fakeGemini{})

	_, err := service.AnalyzeImage(context.Background(), domain.AnalyzeImageRequest{}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrEmptyImage)
}

func TestAnalyzeImageTransportErrorStaysIdle(t *testing.T) {
	service, _, _ := newTestService(&fakeGemini{err: errors.New("network down")})
	userID := uuid.New().String()

	_, err := service.AnalyzeImage(context.Background(), domain.AnalyzeImageRequest{Image: testImage()}, userID)
	require.Error(t, err)

	session, err := service.GetSession(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "idle", session.State)
}

func TestAnalyzeImageUnparseableReplyReviewsEmpty(t *testing.T) {
	// the model answered but not with JSON; review still opens so the
	// user can see that nothing was recognized
	service, _, _ := newTestService(&fakeGemini{response: "I could not identify any food."})
	userID := uuid.New().String()

	res, err := service.AnalyzeImage(context.Background(), domain.AnalyzeImageRequest{Image: testImage()}, userID)
	require.NoError(t, err)
	assert.Equal(t, "reviewing", res.State)
	assert.Empty(t, res.Items)
}

func TestAnalyzeImageArchiveFailureIsIgnored(t *testing.T) {
	gemini := &fakeGemini{response: `[{"name": "Milk", "quantity": "1", "estimatedDaysLeft": 3}]`}
	pantryService := pantry.NewPantryService(&memoryRepository{blobs: make(map[uuid.UUID]string)})
	service := NewScanService(pantryService, gemini, &fakeS3{fail: true})

	res, err := service.AnalyzeImage(context.Background(), domain.AnalyzeImageRequest{Image: testImage()}, uuid.New().String())
	require.NoError(t, err)
	assert.Equal(t, "reviewing", res.State)
	assert.Empty(t, res.ImageURL)
}

func TestEditItem(t *testing.T) {
	gemini := &fakeGemini{response: `[{"name": "Mlik", "quantity": "1", "estimatedDaysLeft": 3}]`}
	service, _, _ := newTestService(gemini)
	userID := uuid.New().String()

	_, err := service.AnalyzeImage(context.Background(), domain.AnalyzeImageRequest{Image: testImage()}, userID)
	require.NoError(t, err)

	name := "Milk"
	quantity := "2"
	item, err := service.EditItem(context.Background(), 0, domain.EditScannedItemRequest{
		Name:     &name,
		Quantity: &quantity,
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, "2", item.Quantity)

	_, err = service.EditItem(context.Background(), 5, domain.EditScannedItemRequest{}, userID)
	assert.ErrorIs(t, err, domain.ErrScanItemNotFound)
}

func TestEditItemExpiryDateRecomputesRisk(t *testing.T) {
	gemini := &fakeGemini{response: `[{"name": "Milk", "quantity": "1", "estimatedDaysLeft": 14}]`}
	service, _, _ := newTestService(gemini)
	userID := uuid.New().String()

	res, err := service.AnalyzeImage(context.Background(), domain.AnalyzeImageRequest{Image: testImage()}, userID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", res.Items[0].ExpiryRisk)

	past := "2020-01-01"
	item, err := service.EditItem(context.Background(), 0, domain.EditScannedItemRequest{ExpiryDate: &past}, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, item.EstimatedDaysLeft)
	assert.Equal(t, "expired", item.ExpiryRisk)
}

func TestEditItemWithoutSession(t *testing.T) {
	service, _, _ := newTestService(&fakeGemini{})

	_, err := service.EditItem(context.Background(), 0, domain.EditScannedItemRequest{}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNoActiveScan)
}

func TestSaveItemsMergesIntoPantry(t *testing.T) {
	gemini := &fakeGemini{response: `[
		{"name": "Milk", "quantity": "2", "estimatedDaysLeft": 3},
		{"name": "Eggs", "quantity": "about half", "estimatedDaysLeft": 14}
	]`}
	service, pantryService, _ := newTestService(gemini)
	userID := uuid.New().String()
	ctx := context.Background()

	_, err := service.AnalyzeImage(ctx, domain.AnalyzeImageRequest{Image: testImage()}, userID)
	require.NoError(t, err)

	saved, err := service.SaveItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, 2.0, saved[0].Quantity)
	// free-text quantity falls back to one
	assert.Equal(t, 1.0, saved[1].Quantity)

	items, err := pantryService.GetIngredients(ctx, "all", userID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// the session ended with the save
	session, err := service.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "idle", session.State)

	_, err = service.SaveItems(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrNoActiveScan)
}

func TestCancelScanDiscards(t *testing.T) {
	gemini := &fakeGemini{response: `[{"name": "Milk", "quantity": "1", "estimatedDaysLeft": 3}]`}
	service, pantryService, _ := newTestService(gemini)
	userID := uuid.New().String()
	ctx := context.Background()

	_, err := service.AnalyzeImage(ctx, domain.AnalyzeImageRequest{Image: testImage()}, userID)
	require.NoError(t, err)

	require.NoError(t, service.CancelScan(ctx, userID))

	session, err := service.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "idle", session.State)

	items, err := pantryService.GetIngredients(ctx, "all", userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// cancelling with no session is fine
	require.NoError(t, service.CancelScan(ctx, userID))
}
