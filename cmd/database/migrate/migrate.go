package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"FreshFocus-Backend/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PantryBlob{}); err != nil {
		log.Fatalf("Error migrating pantry blob database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
