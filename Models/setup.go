package Models

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", path, err)
	}
	DB = connection

	// Companies first, venues reference them.
	DB.AutoMigrate(
		&Company{},
		&Venue{},
	)
}
