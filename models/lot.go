package models

import "time"

type ParkingLot struct {
	LotID       string    `gorm:"column:lot_id;primaryKey" json:"lot_id"`
	Name        string    `gorm:"column:name" json:"name"`
	TotalSpaces int       `gorm:"column:total_spaces" json:"total_spaces"`
	Lat         *float64  `gorm:"column:lat" json:"lat,omitempty"`
	Lng         *float64  `gorm:"column:lng" json:"lng,omitempty"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ParkingLot) TableName() string { return "parking_lots" }

// LotOccupancy is the aggregated view of a lot. The counts and rate are
// recomputed from the lot's current space records on every read, never stored.
type LotOccupancy struct {
	LotID           string    `json:"lot_id"`
	Name            string    `json:"name"`
	TotalSpaces     int       `json:"total_spaces"`
	AvailableSpaces int       `json:"available_spaces"`
	OccupiedSpaces  int       `json:"occupied_spaces"`
	OfflineSpaces   int       `json:"offline_spaces"`
	OccupancyRate   float64   `json:"occupancy_rate"`
	LastUpdate      time.Time `json:"last_update"`
}
