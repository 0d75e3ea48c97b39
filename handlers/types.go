package handlers

import (
	"context"
	"time"

	"smart-parking-api/models"
	"smart-parking-api/services"
)

// Handler-facing interfaces over the services, satisfied by the concrete
// types in services and by stubs in tests.

type LotServiceInterface interface {
	Lots() ([]models.ParkingLot, error)
	Lot(lotID string) (models.ParkingLot, error)
	Spaces(lotID string, f services.SpaceFilter) ([]models.ParkingSpace, error)
	Occupancy(lotID string) (models.LotOccupancy, error)
}

type CacheServiceInterface interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
