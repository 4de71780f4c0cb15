package main

import (
	"log"
	"os"
	"time"

	"github.com/L1quidL1ght/glimpse/cache"
	"github.com/L1quidL1ght/glimpse/config"
	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/router"
	"github.com/L1quidL1ght/glimpse/services"
	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	redisClient := config.NewRedisClient()
	if redisClient == nil {
		utils.InfoLogger.Println("Redis unreachable, running without the guest cache")
	}
	guestCache := cache.NewGuestCache(redisClient)

	monitor := services.NewChangeMonitor(db, guestCache)
	monitor.Start()
	defer monitor.Stop()

	utils.StartBlacklistSweeper(time.Minute)

	r := router.SetupRouter(db, guestCache)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Staff{},
		&models.Guest{},
		&models.GuestTag{},
		&models.TablePreference{},
		&models.FoodPreference{},
		&models.WinePreference{},
		&models.CocktailPreference{},
		&models.SpiritsPreference{},
		&models.Allergy{},
		&models.ImportantDate{},
		&models.Notable{},
		&models.Note{},
		&models.Connection{},
		&models.Visit{},
		&models.VisitOrder{},
		&models.Reservation{},
		&models.PreferenceOption{},
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
