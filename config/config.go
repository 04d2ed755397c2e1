package config

import (
	"log"
	"os"

	"uneaty-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret []byte

func init() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()
	JWTSecret = []byte(getEnv("JWT_SECRET", "uneaty_dev_secret_2024"))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	path := getEnv("UNEATY_DB", "uneaty.db")
	db, err := OpenDB(path)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = db
	log.Println("Database connected and migrated")
}

// OpenDB opens a sqlite database at path and migrates the schema.
// Split out from InitDB so tests can run against throwaway files.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.DeliveryService{},
		&models.FoodTruck{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
