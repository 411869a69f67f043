package pantry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"FreshFocus-Backend/entities"
)

type (
	PantryRepository interface {
		SaveBlob(ctx context.Context, userID uuid.UUID, payload string) error
		LoadBlob(ctx context.Context, userID uuid.UUID) (string, error)
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) SaveBlob(ctx context.Context, userID uuid.UUID, payload string) error {
	blob := &entities.PantryBlob{
		UserID:  userID,
		Payload: payload,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(blob).Error
}

func (r *pantryRepository) LoadBlob(ctx context.Context, userID uuid.UUID) (string, error) {
	var blob entities.PantryBlob
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&blob).Error; err != nil {
		return "", err
	}
	return blob.Payload, nil
}
