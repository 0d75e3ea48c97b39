package models

import "time"

type SpaceStatus string

const (
	SpaceAvailable SpaceStatus = "available"
	SpaceOccupied  SpaceStatus = "occupied"
	SpaceReserved  SpaceStatus = "reserved"
	SpaceOffline   SpaceStatus = "offline"
)

type ParkingSpace struct {
	NodeID      string      `gorm:"column:node_id;primaryKey" json:"node_id"`
	LotID       string      `gorm:"column:lot_id;index:idx_spaces_lot_update,priority:1" json:"lot_id"`
	SpaceNumber string      `gorm:"column:space_number" json:"space_number"`
	Status      SpaceStatus `gorm:"column:status;default:available" json:"status"`
	LastUpdate  time.Time   `gorm:"column:last_update;index:idx_spaces_lot_update,priority:2" json:"last_update"`
	Lat         *float64    `gorm:"column:lat" json:"lat,omitempty"`
	Lng         *float64    `gorm:"column:lng" json:"lng,omitempty"`
	Battery     *float64    `gorm:"column:battery" json:"battery,omitempty"`
	Signal      *float64    `gorm:"column:signal" json:"signal,omitempty"`
	Confidence  *float64    `gorm:"column:confidence" json:"confidence,omitempty"`
}

func (ParkingSpace) TableName() string { return "parking_spaces" }
