package services

import (
	"math"
	"time"

	"smart-parking-api/models"
)

// Aggregate computes a lot's live occupancy view from its current space
// records. Reserved spaces count toward neither the available nor the
// occupied tally. When no space records exist the lot falls back to its
// static capacity with a zero rate. Pure; lastUpdate is the caller's now.
func Aggregate(lot models.ParkingLot, spaces []models.ParkingSpace, now time.Time) models.LotOccupancy {
	var available, occupied, offline int
	for _, s := range spaces {
		switch s.Status {
		case models.SpaceAvailable:
			available++
		case models.SpaceOccupied:
			occupied++
		case models.SpaceOffline:
			offline++
		}
	}

	total := len(spaces)
	if total == 0 {
		total = lot.TotalSpaces
	}

	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(occupied)/float64(total)*100*100) / 100
	}

	return models.LotOccupancy{
		LotID:           lot.LotID,
		Name:            lot.Name,
		TotalSpaces:     total,
		AvailableSpaces: available,
		OccupiedSpaces:  occupied,
		OfflineSpaces:   offline,
		OccupancyRate:   rate,
		LastUpdate:      now,
	}
}
