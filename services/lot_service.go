package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"smart-parking-api/models"

	"gorm.io/gorm"
)

var ErrLotNotFound = errors.New("lot not found")

// SpaceFilter narrows a lot's space listing. Zero values mean no filtering.
type SpaceFilter struct {
	Status string
	Zone   string // space-number prefix
	Limit  int
	Before *time.Time
}

// LotService reads lot and space records from the store. After the first
// store failure it trips a breaker and serves fixed demo data for the rest
// of the process lifetime; only a restart resets it.
type LotService struct {
	db *gorm.DB

	mu       sync.Mutex
	fallback bool

	demoLots   []models.ParkingLot
	demoSpaces map[string][]models.ParkingSpace
}

// NewLotService wraps the store. A nil db starts with the breaker already
// tripped, serving demo data only.
func NewLotService(db *gorm.DB) *LotService {
	lots, spaces := demoData()
	return &LotService{db: db, fallback: db == nil, demoLots: lots, demoSpaces: spaces}
}

func (s *LotService) inFallback() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fallback
}

func (s *LotService) trip(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fallback {
		log.Printf("store failure, switching to demo data until restart: %v", err)
		s.fallback = true
	}
}

func (s *LotService) Lots() ([]models.ParkingLot, error) {
	if s.inFallback() {
		return s.demoLots, nil
	}

	var lots []models.ParkingLot
	if err := s.db.Order("lot_id").Find(&lots).Error; err != nil {
		s.trip(err)
		return s.demoLots, nil
	}
	return lots, nil
}

func (s *LotService) Lot(lotID string) (models.ParkingLot, error) {
	if s.inFallback() {
		return s.demoLot(lotID)
	}

	var lot models.ParkingLot
	err := s.db.Where("lot_id = ?", lotID).First(&lot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ParkingLot{}, ErrLotNotFound
	}
	if err != nil {
		s.trip(err)
		return s.demoLot(lotID)
	}
	return lot, nil
}

// Spaces returns a lot's space records ordered by last update, newest first.
func (s *LotService) Spaces(lotID string, f SpaceFilter) ([]models.ParkingSpace, error) {
	if s.inFallback() {
		return filterSpaces(s.demoSpaces[lotID], f), nil
	}

	query := s.db.Where("lot_id = ?", lotID).Order("last_update DESC")
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Zone != "" {
		query = query.Where("space_number LIKE ?", f.Zone+"%")
	}
	if f.Before != nil {
		query = query.Where("last_update < ?", *f.Before)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var spaces []models.ParkingSpace
	if err := query.Find(&spaces).Error; err != nil {
		s.trip(err)
		return filterSpaces(s.demoSpaces[lotID], f), nil
	}
	return spaces, nil
}

// Occupancy aggregates a lot's live view from its current space records.
func (s *LotService) Occupancy(lotID string) (models.LotOccupancy, error) {
	lot, err := s.Lot(lotID)
	if err != nil {
		return models.LotOccupancy{}, err
	}
	spaces, err := s.Spaces(lotID, SpaceFilter{})
	if err != nil {
		return models.LotOccupancy{}, err
	}
	return Aggregate(lot, spaces, time.Now()), nil
}

func (s *LotService) demoLot(lotID string) (models.ParkingLot, error) {
	for _, lot := range s.demoLots {
		if lot.LotID == lotID {
			return lot, nil
		}
	}
	return models.ParkingLot{}, ErrLotNotFound
}

func filterSpaces(spaces []models.ParkingSpace, f SpaceFilter) []models.ParkingSpace {
	out := make([]models.ParkingSpace, 0, len(spaces))
	for _, sp := range spaces {
		if f.Status != "" && string(sp.Status) != f.Status {
			continue
		}
		if f.Zone != "" && !strings.HasPrefix(sp.SpaceNumber, f.Zone) {
			continue
		}
		if f.Before != nil && !sp.LastUpdate.Before(*f.Before) {
			continue
		}
		out = append(out, sp)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// demoData builds the fixed lots and spaces served while the breaker is
// tripped. Statuses follow a repeating pattern so the demo lots always show
// a plausible mix.
func demoData() ([]models.ParkingLot, map[string][]models.ParkingSpace) {
	lots := []models.ParkingLot{
		{LotID: "lot-central", Name: "Central Garage", TotalSpaces: 120},
		{LotID: "lot-east", Name: "East Street Lot", TotalSpaces: 48},
		{LotID: "lot-station", Name: "Station Park & Ride", TotalSpaces: 80},
	}

	pattern := []models.SpaceStatus{
		models.SpaceOccupied, models.SpaceAvailable, models.SpaceOccupied,
		models.SpaceAvailable, models.SpaceReserved, models.SpaceOccupied,
		models.SpaceAvailable, models.SpaceOffline,
	}
	zones := []string{"A", "B", "C", "D"}

	now := time.Now()
	spaces := make(map[string][]models.ParkingSpace, len(lots))
	for _, lot := range lots {
		perZone := lot.TotalSpaces / len(zones)
		for i := 0; i < lot.TotalSpaces; i++ {
			zone := zones[min(i/perZone, len(zones)-1)]
			spaces[lot.LotID] = append(spaces[lot.LotID], models.ParkingSpace{
				NodeID:      fmt.Sprintf("%s-node-%03d", lot.LotID, i+1),
				LotID:       lot.LotID,
				SpaceNumber: fmt.Sprintf("%s-%02d", zone, i%perZone+1),
				Status:      pattern[i%len(pattern)],
				// Distinct timestamps, newest first, so cursor pagination
				// can page through demo data like seeded data
				LastUpdate: now.Add(-time.Duration(i) * time.Second),
			})
		}
	}
	return lots, spaces
}
