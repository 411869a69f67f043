package entities

import (
	"github.com/google/uuid"
)

// PantryBlob holds a user's full ingredient collection as one JSON payload,
// rewritten wholesale after every mutation. There is no schema version field;
// a payload that no longer unmarshals is treated as an empty pantry.
type PantryBlob struct {
	UserID  uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	Payload string    `gorm:"type:text" json:"payload"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
