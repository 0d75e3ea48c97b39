package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"smart-parking-api/config"
	"smart-parking-api/models"
	"smart-parking-api/services"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedLots = []models.ParkingLot{
	{LotID: "lot-central", Name: "Central Garage", TotalSpaces: 120},
	{LotID: "lot-east", Name: "East Street Lot", TotalSpaces: 48},
	{LotID: "lot-station", Name: "Station Park & Ride", TotalSpaces: 80},
	{LotID: "lot-riverside", Name: "Riverside Surface Lot", TotalSpaces: 64},
}

var zones = []string{"A", "B", "C", "D"}

// randomStatus weights statuses toward the common ones so seeded lots look
// like a normal weekday.
func randomStatus(rng *rand.Rand) models.SpaceStatus {
	switch r := rng.Float64(); {
	case r < 0.50:
		return models.SpaceAvailable
	case r < 0.85:
		return models.SpaceOccupied
	case r < 0.95:
		return models.SpaceReserved
	default:
		return models.SpaceOffline
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.ParkingLot{}, &models.ParkingSpace{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, seeding without live updates: %v", err)
	}
	defer cache.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ctx := context.Background()
	now := time.Now()

	var seeded int
	for _, lot := range seedLots {
		lot.UpdatedAt = now
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&lot).Error; err != nil {
			log.Fatalf("Failed to seed lot %s: %v", lot.LotID, err)
		}

		perZone := lot.TotalSpaces / len(zones)
		for i := 0; i < lot.TotalSpaces; i++ {
			zone := zones[min(i/perZone, len(zones)-1)]
			space := models.ParkingSpace{
				NodeID:      fmt.Sprintf("%s-node-%03d", lot.LotID, i+1),
				LotID:       lot.LotID,
				SpaceNumber: fmt.Sprintf("%s-%02d", zone, i%perZone+1),
				Status:      randomStatus(rng),
				// Spread updates over the last few minutes so cursor
				// pagination has something to page through
				LastUpdate: now.Add(-time.Duration(rng.Intn(300)) * time.Second),
			}
			if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&space).Error; err != nil {
				log.Fatalf("Failed to seed space %s: %v", space.NodeID, err)
			}
			if err := cache.Publish(ctx, services.LiveChannel, space); err != nil {
				log.Printf("Failed to publish %s: %v", space.NodeID, err)
			}
			seeded++
		}
	}

	log.Printf("Seeded %d lots with %d spaces", len(seedLots), seeded)
}
