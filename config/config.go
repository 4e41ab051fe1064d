package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Profile{},
		&models.TargetSet{},
		&models.DailyStat{},
		&models.Meal{},
		&models.MealItem{},
		&models.Conversation{},
		&models.ConversationMessage{},
		&models.AIAuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

var refLoc *time.Location

// ReferenceLocation is the timezone used to resolve "today" whenever a tool
// call or stat write omits its date. TZ_REFERENCE env var, UTC when unset.
func ReferenceLocation() *time.Location {
	if refLoc != nil {
		return refLoc
	}
	name := os.Getenv("TZ_REFERENCE")
	if name == "" {
		refLoc = time.UTC
		return refLoc
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ_REFERENCE %q, falling back to UTC: %v", name, err)
		refLoc = time.UTC
		return refLoc
	}
	refLoc = loc
	return refLoc
}
