package migration

import (
	"fmt"
	"log"

	"recipe-box/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Session{}); err != nil {
		log.Fatalf("Error migrating session database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Account{}); err != nil {
		log.Fatalf("Error migrating account database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Verification{}); err != nil {
		log.Fatalf("Error migrating verification database: %v", err)
		return err
	}

	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Step{}); err != nil {
		log.Fatalf("Error migrating step database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Tag{}); err != nil {
		log.Fatalf("Error migrating tag database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeTag{}); err != nil {
		log.Fatalf("Error migrating recipe tag database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
