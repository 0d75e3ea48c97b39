package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"smart-parking-api/config"
	"smart-parking-api/handlers"
	"smart-parking-api/middleware"
	"smart-parking-api/models"
	"smart-parking-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get sql db handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.ParkingLot{}, &models.ParkingSpace{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Cache is optional; the service degrades to pass-through without it
	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
	}
	defer cache.Close()

	authService := services.NewAuthService(cfg.JWT)
	lotService := services.NewLotService(db)
	engine := services.NewPredictionEngine(rand.New(rand.NewSource(time.Now().UnixNano())))

	authHandler := handlers.NewAuthHandler(db, authService)
	lotsHandler := handlers.NewLotsHandler(lotService, cache)
	spacesHandler := handlers.NewSpacesHandler(lotService)
	predictionHandler := handlers.NewPredictionHandler(lotService, engine, cache)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))
	router.Use(middleware.Metrics())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "UP",
			"message": "Smart Parking API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	router.GET("/lots", lotsHandler.GetLots)
	router.GET("/lots/:lotId", lotsHandler.GetLot)
	router.GET("/lots/:lotId/spaces", spacesHandler.GetSpaces)
	router.GET("/lots/:lotId/prediction", predictionHandler.GetPrediction)

	router.GET("/ws/live", handlers.LiveWebSocket(cache, authService))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
